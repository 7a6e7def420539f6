package gachalog

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"wish-archive/core/reconcile"
	"wish-archive/feature/gachalog/models"
	"wish-archive/feature/statistics"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*Service, *harness) {
	h := newHarness(t, 20)
	svc := NewService(h.engine, h.store, staticCatalog{cat: testCatalog()}, statistics.DefaultPools(), zap.NewNop())
	return svc, h
}

func setupTestApp(t *testing.T) (*fiber.App, *Service, *harness) {
	svc, h := newTestService(t)
	app := fiber.New()
	feature := NewFeature(svc, time.Minute, zap.NewNop())
	require.NoError(t, feature.Load(app))
	return app, svc, h
}

func TestService_RefreshTracksCurrentArchive(t *testing.T) {
	svc, h := newTestService(t)
	ctx := context.Background()

	list, err := svc.Archives(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Nil(t, svc.Current())

	h.fetcher.remote[301] = descending(1, 10)
	result, err := svc.Refresh(ctx, "authkey=k", reconcile.StrategyLazy, nil)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	require.NotNil(t, result.Archive)
	assert.Equal(t, testUID, result.Archive.UID)
	assert.True(t, result.Archive.IsSelected)
	assert.Equal(t, models.QueryWeaponEvent, result.State.QueryType)

	list, err = svc.Archives(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsSelected)

	// A refresh touching nothing keeps the current archive
	h.fetcher.remote = map[int][]int64{}
	result, err = svc.Refresh(ctx, "authkey=k", reconcile.StrategyLazy, nil)
	require.NoError(t, err)
	assert.False(t, result.Changed)
	require.NotNil(t, result.Archive)
	assert.Equal(t, testUID, result.Archive.UID)
}

func TestService_RefreshInProgress(t *testing.T) {
	svc, _ := newTestService(t)

	svc.refreshMu.Lock()
	defer svc.refreshMu.Unlock()

	_, err := svc.Refresh(context.Background(), "authkey=k", reconcile.StrategyLazy, nil)
	assert.ErrorIs(t, err, ErrRefreshInProgress)
}

func TestService_Statistics(t *testing.T) {
	svc, h := newTestService(t)
	ctx := context.Background()

	_, err := svc.Statistics(ctx, "404")
	assert.ErrorIs(t, err, ErrArchiveNotFound)

	h.fetcher.remote[200] = descending(1, 30)
	_, err = svc.Refresh(ctx, "authkey=k", reconcile.StrategyLazy, nil)
	require.NoError(t, err)

	report, err := svc.Statistics(ctx, testUID)
	require.NoError(t, err)
	assert.Equal(t, 30, report.TotalCount)
	assert.Equal(t, 30, report.Permanent.TotalCount)
	assert.Equal(t, 30, report.Permanent.LastOrangePull)
	require.Len(t, report.BlueWeapons, 1)
	assert.Equal(t, 30, report.BlueWeapons[0].Count)
}

func TestHandleRefresh(t *testing.T) {
	app, _, h := setupTestApp(t)
	h.fetcher.remote[100] = descending(1, 3)

	body, _ := json.Marshal(map[string]string{"query": "authkey=k", "strategy": "aggressive"})
	req := httptest.NewRequest("POST", "/gachalog/refresh", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result RefreshResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.NotNil(t, result.Archive)
	assert.Equal(t, testUID, result.Archive.UID)
	assert.True(t, result.Changed)
}

func TestHandleRefresh_BadRequests(t *testing.T) {
	app, svc, _ := setupTestApp(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"Missing Query", `{"strategy":"lazy"}`, 400},
		{"Unknown Strategy", `{"query":"authkey=k","strategy":"eager"}`, 400},
		{"Malformed", `{"query":`, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/gachalog/refresh", bytes.NewReader([]byte(tt.body)))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}

	t.Run("Conflict", func(t *testing.T) {
		svc.refreshMu.Lock()
		defer svc.refreshMu.Unlock()

		req := httptest.NewRequest("POST", "/gachalog/refresh", bytes.NewReader([]byte(`{"query":"authkey=k"}`)))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 409, resp.StatusCode)
	})
}

func TestHandleListArchives(t *testing.T) {
	app, svc, h := setupTestApp(t)
	h.fetcher.remote[302] = descending(1, 2)
	_, err := svc.Refresh(context.Background(), "authkey=k", reconcile.StrategyLazy, nil)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/gachalog/archives", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Archives []models.Archive `json:"archives"`
		Current  *models.Archive  `json:"current"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Archives, 1)
	require.NotNil(t, body.Current)
	assert.Equal(t, testUID, body.Current.UID)
}

func TestHandleStatistics(t *testing.T) {
	app, svc, h := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/gachalog/archives/404/statistics", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	h.fetcher.remote[100] = descending(1, 5)
	_, err = svc.Refresh(context.Background(), "authkey=k", reconcile.StrategyLazy, nil)
	require.NoError(t, err)

	resp, err = app.Test(httptest.NewRequest("GET", "/gachalog/archives/"+testUID+"/statistics", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var report statistics.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, 5, report.TotalCount)
}

func TestFeature(t *testing.T) {
	svc, _ := newTestService(t)
	feature := NewFeature(svc, time.Minute, zap.NewNop())

	assert.Equal(t, "gachalog", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.Same(t, svc, feature.Service())
}
