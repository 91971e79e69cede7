package firestore

import (
	"cloud.google.com/go/firestore"

	shared "github.com/macropilot/server/pkg"
	"github.com/macropilot/server/pkg/types"
)

type Client struct {
	fs *firestore.Client
}

func NewClient(client *firestore.Client) *Client {
	return &Client{fs: client}
}

func (c *Client) Close() error {
	return c.fs.Close()
}

func (c *Client) Users() *Collection[types.UserRecord] {
	return &Collection[types.UserRecord]{
		Ref:           c.fs.Collection(shared.CollectionUsers),
		ToFirestore:   UserToFirestore,
		FromFirestore: FirestoreToUser,
	}
}

func (c *Client) Executions() *Collection[types.ExecutionRecord] {
	return &Collection[types.ExecutionRecord]{
		Ref:           c.fs.Collection(shared.CollectionExecutions),
		ToFirestore:   ExecutionToFirestore,
		FromFirestore: FirestoreToExecution,
	}
}

func (c *Client) userSub(userId, sub string) *firestore.CollectionRef {
	return c.fs.Collection(shared.CollectionUsers).Doc(userId).Collection(sub)
}

// DailyTotals are sub-collections of Users keyed by date:
// users/{uid}/daily_totals/{yyyy-mm-dd}
func (c *Client) DailyTotals(userId string) *Collection[types.DailyNutritionTotals] {
	return &Collection[types.DailyNutritionTotals]{
		Ref:           c.userSub(userId, shared.SubcollectionDailyTotals),
		ToFirestore:   DailyTotalsToFirestore,
		FromFirestore: FirestoreToDailyTotals,
	}
}

func (c *Client) ContextEntries(userId string) *Collection[types.ContextEntry] {
	return &Collection[types.ContextEntry]{
		Ref:           c.userSub(userId, shared.SubcollectionContextEntries),
		ToFirestore:   ContextEntryToFirestore,
		FromFirestore: FirestoreToContextEntry,
	}
}

// FatigueRecords are keyed by muscle group name, one document per group.
func (c *Client) FatigueRecords(userId string) *Collection[types.MuscleFatigueRecord] {
	return &Collection[types.MuscleFatigueRecord]{
		Ref:           c.userSub(userId, shared.SubcollectionFatigue),
		ToFirestore:   FatigueRecordToFirestore,
		FromFirestore: FirestoreToFatigueRecord,
	}
}

func (c *Client) Alerts(userId string) *Collection[types.Alert] {
	return &Collection[types.Alert]{
		Ref:           c.userSub(userId, shared.SubcollectionAlerts),
		ToFirestore:   AlertToFirestore,
		FromFirestore: FirestoreToAlert,
	}
}

// ActivityMarks are keyed by activity domain and hold the most recent
// activity seen in that domain.
func (c *Client) ActivityMarks(userId string) *Collection[types.ActivityMark] {
	return &Collection[types.ActivityMark]{
		Ref:           c.userSub(userId, shared.SubcollectionActivityMarks),
		ToFirestore:   ActivityMarkToFirestore,
		FromFirestore: FirestoreToActivityMark,
	}
}

// Streaks are keyed by activity domain, one document per domain.
func (c *Client) Streaks(userId string) *Collection[types.Streak] {
	return &Collection[types.Streak]{
		Ref:           c.userSub(userId, shared.SubcollectionStreaks),
		ToFirestore:   StreakToFirestore,
		FromFirestore: FirestoreToStreak,
	}
}
