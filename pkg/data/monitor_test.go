package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressframe/pctl/pkg/engine"
)

func TestAddMonitor(t *testing.T) {
	db := setupTestDB(t)

	m, err := AddMonitor(db, "digital ID",
		[]string{"https://feeds.example.com/news.xml"},
		[]string{"digital ID", "#digitalID"}, 60)
	require.NoError(t, err)

	assert.Equal(t, "monitor-001", m.ID)
	assert.Equal(t, "digital ID", m.Topic)
	assert.True(t, m.Active)
	assert.Equal(t, 60, m.FrequencyMinutes)
	assert.Equal(t, engine.DefaultThresholds(), m.Thresholds)
	assert.Zero(t, m.AlertCount)
	assert.Nil(t, m.LastCheck)
}

func TestAddMonitor_SequentialIDs(t *testing.T) {
	db := setupTestDB(t)

	first, err := AddMonitor(db, "one", nil, nil, 0)
	require.NoError(t, err)
	second, err := AddMonitor(db, "two", nil, nil, 0)
	require.NoError(t, err)

	assert.Equal(t, "monitor-001", first.ID)
	assert.Equal(t, "monitor-002", second.ID)
	assert.Equal(t, FrequencyMinutesDefault, first.FrequencyMinutes)
}

func TestAddMonitor_IDsUniqueAfterRemoval(t *testing.T) {
	db := setupTestDB(t)

	first, err := AddMonitor(db, "one", nil, nil, 0)
	require.NoError(t, err)
	_, err = AddMonitor(db, "two", nil, nil, 0)
	require.NoError(t, err)

	require.NoError(t, RemoveMonitor(db, first.ID))
	third, err := AddMonitor(db, "three", nil, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, "monitor-003", third.ID)
}

func TestAddMonitor_EmptyTopic(t *testing.T) {
	db := setupTestDB(t)
	_, err := AddMonitor(db, "", nil, nil, 0)
	assert.Error(t, err)
}

func TestAddMonitor_NilDB(t *testing.T) {
	_, err := AddMonitor(nil, "topic", nil, nil, 0)
	assert.Error(t, err)
}

func TestListMonitors(t *testing.T) {
	db := setupTestDB(t)

	list, err := ListMonitors(db)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = AddMonitor(db, "one", []string{"https://a.example/rss"}, nil, 0)
	require.NoError(t, err)
	_, err = AddMonitor(db, "two", nil, []string{"kw"}, 0)
	require.NoError(t, err)

	list, err = ListMonitors(db)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "one", list[0].Topic)
	assert.Equal(t, []string{"https://a.example/rss"}, list[0].Feeds)
	assert.Equal(t, []string{"kw"}, list[1].Keywords)
}

func TestGetMonitor(t *testing.T) {
	db := setupTestDB(t)
	added, err := AddMonitor(db, "topic", nil, nil, 0)
	require.NoError(t, err)

	got, err := GetMonitor(db, added.ID)
	require.NoError(t, err)
	assert.Equal(t, added.Topic, got.Topic)
	assert.Equal(t, added.Thresholds, got.Thresholds)

	_, err = GetMonitor(db, "monitor-999")
	assert.ErrorIs(t, err, ErrMonitorNotFound)
}

func TestRemoveMonitor(t *testing.T) {
	db := setupTestDB(t)
	m, err := AddMonitor(db, "topic", nil, nil, 0)
	require.NoError(t, err)

	require.NoError(t, RemoveMonitor(db, m.ID))
	_, err = GetMonitor(db, m.ID)
	assert.ErrorIs(t, err, ErrMonitorNotFound)

	assert.ErrorIs(t, RemoveMonitor(db, m.ID), ErrMonitorNotFound)
}

func TestSetMonitorActive(t *testing.T) {
	db := setupTestDB(t)
	m, err := AddMonitor(db, "topic", nil, nil, 0)
	require.NoError(t, err)

	require.NoError(t, SetMonitorActive(db, m.ID, false))
	got, err := GetMonitor(db, m.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	require.NoError(t, SetMonitorActive(db, m.ID, true))
	got, err = GetMonitor(db, m.ID)
	require.NoError(t, err)
	assert.True(t, got.Active)

	assert.ErrorIs(t, SetMonitorActive(db, "monitor-999", false), ErrMonitorNotFound)
}

func TestRecordCheckAndAlert(t *testing.T) {
	db := setupTestDB(t)
	m, err := AddMonitor(db, "topic", nil, nil, 0)
	require.NoError(t, err)

	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	require.NoError(t, RecordCheck(db, m.ID, at))
	require.NoError(t, RecordAlert(db, m.ID, at))
	require.NoError(t, RecordAlert(db, m.ID, at.Add(time.Hour)))

	got, err := GetMonitor(db, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastCheck)
	assert.Equal(t, at, *got.LastCheck)
	require.NotNil(t, got.LastAlert)
	assert.Equal(t, at.Add(time.Hour), *got.LastAlert)
	assert.Equal(t, 2, got.AlertCount)
}
