package table

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/leapstack-labs/leaptable/internal/testutil"
	"github.com/leapstack-labs/leaptable/pkg/adapters/sqlite"
	"github.com/leapstack-labs/leaptable/pkg/core"
	"github.com/leapstack-labs/leaptable/pkg/executor"
	"github.com/leapstack-labs/leaptable/pkg/result"
	"github.com/leapstack-labs/leaptable/pkg/statement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	msgID        = core.NewColumn("id", core.TypeSerial, false)
	msgSenderID  = core.NewColumn("sender_id", core.TypeInteger, true)
	msgRecipient = core.NewColumn("recipient", core.TypeInteger, true)
	msgText      = core.NewColumn("text", core.TypeText, true)

	liteUsers    = core.NewSchema("main", "users", colID, colEmail, colSalt, colPassword)
	liteMessages = core.NewSchema("main", "messages", msgID, msgSenderID, msgRecipient, msgText)
)

type message struct {
	ID        int64  `db:"id"`
	SenderID  int64  `db:"sender_id"`
	Recipient int64  `db:"recipient"`
	Text      string `db:"text"`
}

// inbox is one message joined with its sender.
type inbox struct {
	Message message
	Sender  user
}

// countingExecutor counts statements passed through to the wrapped executor.
type countingExecutor struct {
	*executor.SQLExecutor
	calls atomic.Int64
}

func (c *countingExecutor) ExecuteQuery(ctx context.Context, stmt string, d result.Deserializer) (*result.Response, error) {
	c.calls.Add(1)
	return c.SQLExecutor.ExecuteQuery(ctx, stmt, d)
}

func (c *countingExecutor) ExecuteUpdate(ctx context.Context, stmt string, d result.Deserializer) (*result.Response, error) {
	c.calls.Add(1)
	return c.SQLExecutor.ExecuteUpdate(ctx, stmt, d)
}

func newSQLiteExecutor(t *testing.T) *executor.SQLExecutor {
	t.Helper()
	ctx := context.Background()

	adp := sqlite.New(testutil.NewTestLogger(t))
	require.NoError(t, adp.Connect(ctx, core.AdapterConfig{Type: "sqlite", Path: sqlite.MemoryPath}))
	t.Cleanup(func() { _ = adp.Close() })

	return executor.New(adp, testutil.NewTestLogger(t))
}

func newSQLiteUsers(t *testing.T, exec executor.Executor) *Controller[user] {
	t.Helper()
	users := New[user](exec, liteUsers, WithLogger[user](testutil.NewTestLogger(t)))
	require.NoError(t, users.CreateTable(context.Background()))
	return users
}

func insertUser(t *testing.T, users *Controller[user], email string) user {
	t.Helper()
	u, err := users.Insert(context.Background(), users.InsertBuilder().
		Set(colEmail, email).
		Set(colSalt, "salt-"+email).
		Set(colPassword, "hash-"+email))
	require.NoError(t, err)
	return u
}

func TestScenario_InsertWithoutReturning(t *testing.T) {
	users := newSQLiteUsers(t, newSQLiteExecutor(t))

	got := insertUser(t, users, "john.doe@gmail.com")
	assert.Equal(t, user{
		ID:             1,
		Email:          "john.doe@gmail.com",
		Salt:           "salt-john.doe@gmail.com",
		HashedPassword: "hash-john.doe@gmail.com",
	}, got)
}

func TestScenario_SelectOr(t *testing.T) {
	users := newSQLiteUsers(t, newSQLiteExecutor(t))
	insertUser(t, users, "john.doe@gmail.com")
	insertUser(t, users, "jane.doe@gmail.com")

	got, err := users.Read(context.Background(), users.SelectBuilder().
		Where(colEmail, statement.Equals, "john.doe@gmail.com").
		Or(colEmail, statement.Equals, "jane.doe@gmail.com"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
}

func TestScenario_SelectAnd(t *testing.T) {
	users := newSQLiteUsers(t, newSQLiteExecutor(t))
	insertUser(t, users, "john.doe@gmail.com")
	insertUser(t, users, "jane.doe@gmail.com")

	got, err := users.Read(context.Background(), users.SelectBuilder().
		Where(colID, statement.Equals, "2").
		And(colEmail, statement.Equals, "jane.doe@gmail.com"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestScenario_DeleteThenSelect(t *testing.T) {
	ctx := context.Background()
	users := newSQLiteUsers(t, newSQLiteExecutor(t))
	insertUser(t, users, "john.doe@gmail.com")
	insertUser(t, users, "jane.doe@gmail.com")

	n, err := users.Delete(ctx, users.DeleteBuilder().Where(colID, statement.Equals, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := users.Read(ctx, users.SelectBuilder().Where(colID, statement.Equals, 1))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	rest, err := users.Read(ctx, users.SelectBuilder())
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

func TestScenario_Update(t *testing.T) {
	ctx := context.Background()
	users := newSQLiteUsers(t, newSQLiteExecutor(t))
	insertUser(t, users, "john.doe@gmail.com")

	n, err := users.Update(ctx, users.UpdateBuilder().
		Set(colSalt, "rotated").
		Where(colEmail, statement.Equals, "john.doe@gmail.com"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := users.Read(ctx, users.SelectBuilder().Where(colID, statement.Equals, 1))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "rotated", got[0].Salt)
}

func TestScenario_Join(t *testing.T) {
	ctx := context.Background()
	exec := newSQLiteExecutor(t)
	users := newSQLiteUsers(t, exec)
	john := insertUser(t, users, "john.doe@gmail.com")
	jane := insertUser(t, users, "jane.doe@gmail.com")

	messages := New[message](exec, liteMessages)
	require.NoError(t, messages.CreateTable(ctx))

	_, err := messages.Insert(ctx, messages.InsertBuilder().
		Set(msgSenderID, john.ID).
		Set(msgRecipient, jane.ID).
		Set(msgText, "hello"))
	require.NoError(t, err)

	// A custom decoder can still read the combined row by position.
	inboxes := New[inbox](exec, liteMessages, WithDecoder(func(r result.Row) (inbox, error) {
		if r.Len() != 6 {
			return inbox{}, fmt.Errorf("want 6 cells, got %d", r.Len())
		}
		var out inbox
		var err error
		ints := []*int64{&out.Message.ID, &out.Message.Recipient, &out.Message.SenderID}
		for i, dst := range ints {
			if *dst, err = cellInt64(r[i]); err != nil {
				return inbox{}, err
			}
		}
		out.Message.Text, _ = r[3].Value.(string)
		if out.Sender.ID, err = cellInt64(r[4]); err != nil {
			return inbox{}, err
		}
		out.Sender.Email, _ = r[5].Value.(string)
		return out, nil
	}))

	got, err := inboxes.Join(ctx, inboxes.JoinBuilder().
		Select(
			liteMessages.Ref(msgID), liteMessages.Ref(msgRecipient),
			liteMessages.Ref(msgSenderID), liteMessages.Ref(msgText),
			liteUsers.Ref(colID), liteUsers.Ref(colEmail),
		).
		Join(statement.InnerJoin(liteMessages.Ref(msgSenderID), liteUsers.Ref(colID))).
		Where(liteMessages.Ref(msgRecipient), statement.Equals, jane.ID))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, message{ID: 1, SenderID: john.ID, Recipient: jane.ID, Text: "hello"}, got[0].Message)
	assert.Equal(t, john.ID, got[0].Sender.ID)
	assert.Equal(t, "john.doe@gmail.com", got[0].Sender.Email)
}

// inboxRow is a flat join row decoded by the default decoder through
// table-qualified tags.
type inboxRow struct {
	MessageID   int64  `db:"messages.id"`
	SenderID    int64  `db:"messages.sender_id"`
	Text        string `db:"messages.text"`
	UserID      int64  `db:"users.id"`
	SenderEmail string `db:"users.email"`
}

func TestScenario_JoinDefaultDecoder(t *testing.T) {
	ctx := context.Background()
	exec := newSQLiteExecutor(t)
	users := newSQLiteUsers(t, exec)
	john := insertUser(t, users, "john.doe@gmail.com")
	jane := insertUser(t, users, "jane.doe@gmail.com")

	messages := New[message](exec, liteMessages)
	require.NoError(t, messages.CreateTable(ctx))
	sent, err := messages.Insert(ctx, messages.InsertBuilder().
		Set(msgSenderID, jane.ID).
		Set(msgRecipient, john.ID).
		Set(msgText, "hi"))
	require.NoError(t, err)
	require.NotEqual(t, sent.ID, jane.ID, "ids must differ for the collision to show")

	rows := New[inboxRow](exec, liteMessages)
	got, err := rows.Join(ctx, rows.JoinBuilder().
		Select(
			liteMessages.Ref(msgID), liteMessages.Ref(msgSenderID), liteMessages.Ref(msgText),
			liteUsers.Ref(colID), liteUsers.Ref(colEmail),
		).
		Join(statement.InnerJoin(liteMessages.Ref(msgSenderID), liteUsers.Ref(colID))).
		Where(liteMessages.Ref(msgRecipient), statement.Equals, john.ID))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, inboxRow{
		MessageID:   sent.ID,
		SenderID:    jane.ID,
		Text:        "hi",
		UserID:      jane.ID,
		SenderEmail: "jane.doe@gmail.com",
	}, got[0])
}

func cellInt64(c result.Cell) (int64, error) {
	n, ok := result.Row{c}.Int64(c.Name)
	if !ok {
		return 0, fmt.Errorf("cell %s=%v is not an integer", c.Name, c.Value)
	}
	return n, nil
}

func TestScenario_ReturningRoundTrip(t *testing.T) {
	users := newSQLiteUsers(t, newSQLiteExecutor(t))

	got, err := users.Insert(context.Background(), users.InsertBuilder().
		Set(colEmail, "john.doe@gmail.com").
		Set(colSalt, "S").
		Set(colPassword, "H").
		Returning(colID, colEmail))
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "john.doe@gmail.com", got.Email)
	assert.Empty(t, got.Salt, "non-returned columns stay at their zero value")
	assert.Empty(t, got.HashedPassword)
}

func TestScenario_MissingRequiredIssuesNoStatement(t *testing.T) {
	exec := &countingExecutor{SQLExecutor: newSQLiteExecutor(t)}
	users := newSQLiteUsers(t, exec)
	before := exec.calls.Load()

	_, err := users.Insert(context.Background(), users.InsertBuilder().Set(colEmail, "a"))
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, before, exec.calls.Load())
}

func TestScenario_TableLifecycle(t *testing.T) {
	ctx := context.Background()
	exec := newSQLiteExecutor(t)
	users := New[user](exec, liteUsers)

	first, err := users.TableExists(ctx)
	require.NoError(t, err)
	second, err := users.TableExists(ctx)
	require.NoError(t, err)
	assert.False(t, first)
	assert.Equal(t, first, second)

	require.NoError(t, users.CreateTable(ctx))
	first, err = users.TableExists(ctx)
	require.NoError(t, err)
	second, err = users.TableExists(ctx)
	require.NoError(t, err)
	assert.True(t, first)
	assert.Equal(t, first, second)

	meta, err := users.Describe(ctx)
	require.NoError(t, err)
	assert.Equal(t, "users", meta.Name)
	assert.Len(t, meta.Columns, 4)

	err = users.CreateTable(ctx)
	require.ErrorIs(t, err, ErrExecution, "creating an existing table fails")

	require.NoError(t, users.DropTable(ctx))
	exists, err := users.TableExists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	err = users.DropTable(ctx)
	require.ErrorIs(t, err, ErrExecution)
}

func TestScenario_UniqueViolationOnSerial(t *testing.T) {
	ctx := context.Background()
	exec := newSQLiteExecutor(t)
	users := newSQLiteUsers(t, exec)
	insertUser(t, users, "a")

	// The serial column is the primary key; reusing it is a constraint violation.
	_, err := users.Insert(ctx, users.InsertBuilder().
		Set(colID, 1).Set(colEmail, "b").Set(colSalt, "s").Set(colPassword, "h"))
	require.ErrorIs(t, err, ErrExecution)

	var qe *executor.QueryError
	require.ErrorAs(t, err, &qe)
	assert.True(t, qe.Violation)
}
