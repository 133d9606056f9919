package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBusyDayService(t *testing.T) (*BusyDayService, *fakeLedger, *fakeGateway) {
	t.Helper()
	cfg := testConfig(t)
	ledger := newFakeLedger()
	gateway := &fakeGateway{}
	return NewBusyDayService(cfg, ledger, gateway), ledger, gateway
}

func TestToggleAddIsIdempotent(t *testing.T) {
	svc, ledger, gateway := newBusyDayService(t)

	msg, err := svc.Toggle(context.Background(), "2025-06-02", ActionAdd)
	require.NoError(t, err)
	assert.Equal(t, "Busy day added", msg)

	msg, err = svc.Toggle(context.Background(), "2025-06-02", ActionAdd)
	require.NoError(t, err)
	assert.Equal(t, "Busy day added", msg)

	assert.Len(t, ledger.busyDays, 1, "re-adding the same date must not create a second record")
	assert.Len(t, gateway.busyDayEventDays, 2)
}

func TestToggleRemove(t *testing.T) {
	svc, ledger, _ := newBusyDayService(t)

	_, err := svc.Toggle(context.Background(), "2025-06-02", ActionAdd)
	require.NoError(t, err)

	msg, err := svc.Toggle(context.Background(), "2025-06-02", ActionRemove)
	require.NoError(t, err)
	assert.Equal(t, "Busy day removed", msg)
	assert.Empty(t, ledger.busyDays)
}

func TestToggleRemoveAbsentIsNonFatal(t *testing.T) {
	svc, _, _ := newBusyDayService(t)

	msg, err := svc.Toggle(context.Background(), "2025-06-02", ActionRemove)
	require.NoError(t, err, "removing a never-added date is not an error")
	assert.Equal(t, "Busy day already removed", msg)
}

func TestToggleValidation(t *testing.T) {
	svc, _, _ := newBusyDayService(t)

	_, err := svc.Toggle(context.Background(), "2025-06-02", "flip")
	httpErr := assertHTTPCode(t, err, http.StatusBadRequest)
	assert.Equal(t, "Invalid action", httpErr.Message)

	_, err = svc.Toggle(context.Background(), "junk", ActionAdd)
	assertHTTPCode(t, err, http.StatusBadRequest)
}

func TestToggleAddSurvivesCalendarFailure(t *testing.T) {
	svc, ledger, gateway := newBusyDayService(t)
	gateway.busyDayEventErr = errors.New("calendar down")

	msg, err := svc.Toggle(context.Background(), "2025-06-02", ActionAdd)
	require.NoError(t, err, "the ledger record is authoritative, the calendar block is best effort")
	assert.Equal(t, "Busy day added", msg)
	assert.Len(t, ledger.busyDays, 1)
}

func TestAddBusyRangeInclusive(t *testing.T) {
	svc, ledger, gateway := newBusyDayService(t)

	created, err := svc.AddBusyRange(context.Background(), "2025-06-02", "2025-06-05")
	require.NoError(t, err)
	assert.Equal(t, 4, created)
	assert.Len(t, ledger.busyDays, 4)
	assert.Len(t, gateway.busyDayEventDays, 4)
}

func TestAddBusyRangeSingleDay(t *testing.T) {
	svc, _, _ := newBusyDayService(t)

	created, err := svc.AddBusyRange(context.Background(), "2025-06-02", "2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, 1, created)
}

func TestAddBusyRangeContinuesPastFailures(t *testing.T) {
	cfg := testConfig(t)
	ledger := newFakeLedger()
	gateway := &fakeGateway{}
	svc := NewBusyDayService(cfg, ledger, gateway)

	// Fail every ledger write: nothing counts, but the loop completes.
	ledger.upsertErr = errors.New("db flake")
	created, err := svc.AddBusyRange(context.Background(), "2025-06-02", "2025-06-04")
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	// Calendar failures do not reduce the count; the ledger write is
	// what daysCreated reports.
	ledger.upsertErr = nil
	gateway.busyDayEventErr = errors.New("calendar down")
	created, err = svc.AddBusyRange(context.Background(), "2025-06-02", "2025-06-04")
	require.NoError(t, err)
	assert.Equal(t, 3, created)
}

func TestAddBusyRangeValidation(t *testing.T) {
	svc, _, _ := newBusyDayService(t)

	_, err := svc.AddBusyRange(context.Background(), "", "2025-06-05")
	assertHTTPCode(t, err, http.StatusBadRequest)

	_, err = svc.AddBusyRange(context.Background(), "2025-06-05", "2025-06-02")
	httpErr := assertHTTPCode(t, err, http.StatusBadRequest)
	assert.Equal(t, "Start date must be before or equal to end date", httpErr.Message)
}

func TestPruneExpiredBusyDays(t *testing.T) {
	cfg := testConfig(t)
	ledger := newFakeLedger()
	svc := NewJobService(cfg, ledger)

	past := time.Now().In(cfg.Location).AddDate(0, 0, -10)
	future := time.Now().In(cfg.Location).AddDate(0, 0, 10)
	_, err := ledger.UpsertBusyDay(past)
	require.NoError(t, err)
	_, err = ledger.UpsertBusyDay(future)
	require.NoError(t, err)

	require.NoError(t, svc.PruneExpiredBusyDays())
	assert.Len(t, ledger.busyDays, 1, "only the past busy day is pruned")
}
