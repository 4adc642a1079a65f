package sqlbuild

import (
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/library-circulation/eventstore"
)

const (
	ColEventType      = "event_type"
	ColOccurredAt     = "occurred_at"
	ColPayload        = "payload"
	ColMetadata       = "metadata"
	ColSequenceNumber = "sequence_number"

	cteContext  = "context"
	cteVals     = "vals"
	aliasMaxSeq = "max_seq"
)

// Dialect describes the database specific parts of the statements.
type Dialect struct {
	// Name is the registered goqu dialect, e.g. "postgres" or "sqlite3".
	Name string

	// Predicate renders "payload has key with string value".
	Predicate func(predicate eventstore.FilterPredicate) exp.Expression

	// OccurredAt converts the timestamp into the value stored in the occurred_at column.
	OccurredAt func(t time.Time) any

	// CastText, CastTimestamp and CastJSON are literal templates with one placeholder,
	// used for the multi event UNION ALL values.
	CastText      string
	CastTimestamp string
	CastJSON      string

	// AppendLock renders a statement that serializes appenders on the table, executed in the
	// same transaction before the conditional insert. Nil when the database serializes writers itself.
	AppendLock func(table string) string
}

// Builder builds the select and append statements for one events table.
type Builder struct {
	dialect Dialect
	table   string
}

// New creates a Builder.
func New(dialect Dialect, table string) Builder {
	return Builder{dialect: dialect, table: table}
}

// AppendLockStatement returns the lock statement to run before an append, or "" if none is needed.
func (b Builder) AppendLockStatement() string {
	if b.dialect.AppendLock == nil {
		return ""
	}

	return b.dialect.AppendLock(b.table)
}

// SelectQuery builds the query for all events matching the filter, ordered by sequence number.
func (b Builder) SelectQuery(filter eventstore.Filter) (string, error) {
	selectStmt := goqu.Dialect(b.dialect.Name).
		From(b.table).
		Select(ColEventType, ColOccurredAt, ColPayload, ColMetadata, ColSequenceNumber).
		Where(b.whereExpression(filter)).
		Order(goqu.I(ColSequenceNumber).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// AppendQuery builds an INSERT that only writes rows when the max sequence number of the
// filter's stream still equals expectedMaxSequenceNumber. Zero affected rows means conflict.
func (b Builder) AppendQuery(
	events eventstore.StorableEvents,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) (string, error) {

	if len(events) == 0 {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, errors.New("no events to append"))
	}

	if len(events) == 1 {
		return b.singleEventInsert(events[0], filter, expectedMaxSequenceNumber)
	}

	return b.multipleEventsInsert(events, filter, expectedMaxSequenceNumber)
}

func (b Builder) maxSequenceCTE(filter eventstore.Filter) *goqu.SelectDataset {
	return goqu.Dialect(b.dialect.Name).
		From(b.table).
		Select(goqu.MAX(ColSequenceNumber).As(aliasMaxSeq)).
		Where(b.whereExpression(filter))
}

func (b Builder) singleEventInsert(
	event eventstore.StorableEvent,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) (string, error) {

	builder := goqu.Dialect(b.dialect.Name)

	selectStmt := builder.
		From(cteContext).
		Select(
			goqu.V(event.EventType),
			goqu.V(b.dialect.OccurredAt(event.OccurredAt)),
			goqu.V(string(event.PayloadJSON)),
			goqu.V(string(event.MetadataJSON)),
		).
		Where(goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(goqu.V(expectedMaxSequenceNumber)))

	insertStmt := builder.
		Insert(b.table).
		Cols(ColEventType, ColOccurredAt, ColPayload, ColMetadata).
		With(cteContext, b.maxSequenceCTE(filter)).
		FromQuery(selectStmt)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (b Builder) multipleEventsInsert(
	events eventstore.StorableEvents,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) (string, error) {

	builder := goqu.Dialect(b.dialect.Name)

	var valuesStmt *goqu.SelectDataset
	for _, event := range events {
		row := builder.Select(
			goqu.L(b.dialect.CastText, event.EventType).As(ColEventType),
			goqu.L(b.dialect.CastTimestamp, b.dialect.OccurredAt(event.OccurredAt)).As(ColOccurredAt),
			goqu.L(b.dialect.CastJSON, string(event.PayloadJSON)).As(ColPayload),
			goqu.L(b.dialect.CastJSON, string(event.MetadataJSON)).As(ColMetadata),
		)

		if valuesStmt == nil {
			valuesStmt = row
			continue
		}

		valuesStmt = valuesStmt.UnionAll(row)
	}

	qualified := func(col string) string { return fmt.Sprintf("%s.%s", cteVals, col) }

	insertStmt := builder.
		Insert(b.table).
		Cols(ColEventType, ColOccurredAt, ColPayload, ColMetadata).
		With(cteContext, b.maxSequenceCTE(filter)).
		With(cteVals, valuesStmt).
		FromQuery(
			builder.From(cteContext, cteVals).
				Select(qualified(ColEventType), qualified(ColOccurredAt), qualified(ColPayload), qualified(ColMetadata)).
				Where(goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(goqu.V(expectedMaxSequenceNumber))),
		)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (b Builder) whereExpression(filter eventstore.Filter) exp.ExpressionList {
	itemExpressions := make([]exp.Expression, 0, len(filter.Items()))

	for _, item := range filter.Items() {
		eventTypeExpressions := make([]exp.Expression, 0, len(item.EventTypes()))
		for _, eventType := range item.EventTypes() {
			eventTypeExpressions = append(eventTypeExpressions, goqu.Ex{ColEventType: eventType})
		}

		predicateExpressions := make([]exp.Expression, 0, len(item.Predicates()))
		for _, predicate := range item.Predicates() {
			predicateExpressions = append(predicateExpressions, b.dialect.Predicate(predicate))
		}

		predicates := goqu.Or(predicateExpressions...)
		if item.AllPredicatesMustMatch() {
			predicates = goqu.And(predicateExpressions...)
		}

		itemExpressions = append(itemExpressions, goqu.And(goqu.Or(eventTypeExpressions...), predicates))
	}

	return goqu.Or(itemExpressions...)
}
