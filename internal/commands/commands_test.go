package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	portssvc "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/dto"
	"github.com/algoplusmessflow-tech/Messflow-sub001/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePettyCash struct {
	portssvc.PettyCashSvcFacade
	rebalancedFor string
}

func (f *fakePettyCash) Rebalance(_ context.Context, ownerID string) (int, error) {
	f.rebalancedFor = ownerID
	return 3, nil
}

func (f *fakePettyCash) CurrentBalance(context.Context, string) (decimal.Decimal, error) {
	return decimal.RequireFromString("420.5"), nil
}

type fakeReporting struct {
	month string
}

func (f *fakeReporting) BuildAuditReport(_ context.Context, _ string, month string) (*domain.AuditReport, error) {
	f.month = month
	return &domain.AuditReport{Month: month, NetProfit: decimal.NewFromInt(1200)}, nil
}

type fakeProfile struct {
	portssvc.ProfileSvcFacade
	req dto.UpdatePlanRequest
}

func (f *fakeProfile) UpdatePlan(_ context.Context, ownerID string, req dto.UpdatePlanRequest) (*domain.Profile, error) {
	f.req = req
	p := domain.DefaultProfile(ownerID)
	p.PlanType = req.PlanType
	p.SubscriptionStatus = req.SubscriptionStatus
	p.SubscriptionExpiry = req.SubscriptionExpiry
	return &p, nil
}

func runCtl(t *testing.T, svc *portssvc.ServiceContainer, migrator Migrator, args ...string) (string, error) {
	t.Helper()
	released := false
	runtime := func(context.Context) (*portssvc.ServiceContainer, func(), error) {
		return svc, func() { released = true }, nil
	}
	if migrator == nil {
		migrator = func(database.Direction) error { return nil }
	}
	cmd := newRootCommand(runtime, migrator)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil && svc != nil {
		assert.True(t, released, "runtime should be released")
	}
	return out.String(), err
}

func TestPettyCashRebalance(t *testing.T) {
	pc := &fakePettyCash{}
	out, err := runCtl(t, &portssvc.ServiceContainer{PettyCash: pc}, nil, "pettycash", "rebalance", "--owner", "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "owner-1", pc.rebalancedFor)
	assert.Contains(t, out, "corrected 3 entries, balance 420.50")
}

func TestPettyCashRebalance_RequiresOwner(t *testing.T) {
	_, err := runCtl(t, &portssvc.ServiceContainer{PettyCash: &fakePettyCash{}}, nil, "pettycash", "rebalance")
	require.Error(t, err)
}

func TestReportAudit_PrintsJSON(t *testing.T) {
	rep := &fakeReporting{}
	out, err := runCtl(t, &portssvc.ServiceContainer{Reporting: rep}, nil, "report", "audit", "--owner", "owner-1", "--month", "2026-08")
	require.NoError(t, err)
	assert.Equal(t, "2026-08", rep.month)

	var report domain.AuditReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "2026-08", report.Month)
	assert.True(t, report.NetProfit.Equal(decimal.NewFromInt(1200)))
}

func TestPlanSet_OnlyChangedFlags(t *testing.T) {
	prof := &fakeProfile{}
	out, err := runCtl(t, &portssvc.ServiceContainer{Profile: prof}, nil,
		"plan", "set", "--owner", "owner-1", "--plan", "pro", "--expiry", "2027-01-31")
	require.NoError(t, err)

	require.NotNil(t, prof.req.PlanType)
	assert.Equal(t, domain.PlanPro, *prof.req.PlanType)
	require.NotNil(t, prof.req.SubscriptionExpiry)
	assert.Equal(t, time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC), *prof.req.SubscriptionExpiry)
	assert.Nil(t, prof.req.SubscriptionStatus)
	assert.Nil(t, prof.req.StorageLimitBytes)

	var resp dto.ProfileResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, domain.PlanPro, resp.PlanType)
}

func TestPlanSet_NothingToChange(t *testing.T) {
	_, err := runCtl(t, &portssvc.ServiceContainer{Profile: &fakeProfile{}}, nil, "plan", "set", "--owner", "owner-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to change")
}

func TestPlanSet_BadExpiry(t *testing.T) {
	_, err := runCtl(t, &portssvc.ServiceContainer{Profile: &fakeProfile{}}, nil, "plan", "set", "--owner", "owner-1", "--expiry", "next week")
	require.Error(t, err)
}

func TestMigrate_Directions(t *testing.T) {
	var got []database.Direction
	migrator := func(dir database.Direction) error {
		got = append(got, dir)
		return nil
	}
	_, err := runCtl(t, nil, migrator, "migrate", "up")
	require.NoError(t, err)
	_, err = runCtl(t, nil, migrator, "migrate", "down")
	require.NoError(t, err)
	assert.Equal(t, []database.Direction{database.Up, database.Down}, got)
}

func TestMigrate_PropagatesError(t *testing.T) {
	boom := errors.New("dirty database version 2")
	_, err := runCtl(t, nil, func(database.Direction) error { return boom }, "migrate", "up")
	require.ErrorIs(t, err, boom)
}
