package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/defterhane/defterhane/internal/lifecycle"
	"github.com/defterhane/defterhane/internal/ownerctx"
	"github.com/defterhane/defterhane/internal/rates"
	"github.com/defterhane/defterhane/internal/taxreturn/domain"
	taxreturnservice "github.com/defterhane/defterhane/internal/taxreturn/service"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	db    *gorm.DB
	node  *snowflake.Node
	svc   domain.Service
	owner snowflake.ID
	ctx   context.Context
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.TaxReturn{}))

	node, err := snowflake.NewNode(4)
	require.NoError(t, err)

	tables, err := rates.ForYear(2024)
	require.NoError(t, err)

	svc := taxreturnservice.NewService(taxreturnservice.ServiceParam{
		DB:     db,
		Log:    zap.NewNop(),
		GenID:  node,
		Tables: tables,
	})

	owner := node.Generate()
	return &testEnv{
		db:    db,
		node:  node,
		svc:   svc,
		owner: owner,
		ctx:   ownerctx.WithOwnerID(context.Background(), owner),
	}
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return v
}

func TestCreateDerivesTaxAmount(t *testing.T) {
	env := newTestEnv(t)

	ret, err := env.svc.Create(env.ctx, domain.CreateReturnRequest{
		Type:          rates.TaxTypeVAT,
		Period:        "2024-03",
		TaxableAmount: dec(t, "50000"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ReturnStatusDraft, ret.Status)
	assert.Equal(t, "2024-03", ret.Period)
	assert.True(t, ret.TaxAmount.Equal(dec(t, "10000.00")), "tax amount %s", ret.TaxAmount)

	corporate, err := env.svc.Create(env.ctx, domain.CreateReturnRequest{
		Type:          rates.TaxTypeCorporate,
		Period:        "2024-03",
		TaxableAmount: dec(t, "100000"),
	})
	require.NoError(t, err)
	assert.True(t, corporate.TaxAmount.Equal(dec(t, "25000.00")))
}

func TestCreateValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Create(env.ctx, domain.CreateReturnRequest{
		Type:          rates.TaxType("wealth"),
		Period:        "2024-03",
		TaxableAmount: dec(t, "100"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidType)

	_, err = env.svc.Create(env.ctx, domain.CreateReturnRequest{
		Type:          rates.TaxTypeVAT,
		Period:        "March 2024",
		TaxableAmount: dec(t, "100"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidPeriod)

	_, err = env.svc.Create(env.ctx, domain.CreateReturnRequest{
		Type:          rates.TaxTypeVAT,
		Period:        "2024-13",
		TaxableAmount: dec(t, "100"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidPeriod)

	_, err = env.svc.Create(env.ctx, domain.CreateReturnRequest{
		Type:          rates.TaxTypeVAT,
		Period:        "2024-03",
		TaxableAmount: dec(t, "-1"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = env.svc.Create(context.Background(), domain.CreateReturnRequest{
		Type:          rates.TaxTypeVAT,
		Period:        "2024-03",
		TaxableAmount: dec(t, "100"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidOwner)
}

func TestDuplicatePeriodRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Create(env.ctx, domain.CreateReturnRequest{
		Type:          rates.TaxTypeVAT,
		Period:        "2024-05",
		TaxableAmount: dec(t, "100"),
	})
	require.NoError(t, err)

	_, err = env.svc.Create(env.ctx, domain.CreateReturnRequest{
		Type:          rates.TaxTypeVAT,
		Period:        "2024-05",
		TaxableAmount: dec(t, "200"),
	})
	var duplicate *domain.DuplicatePeriodError
	require.True(t, errors.As(err, &duplicate))
	assert.Equal(t, rates.TaxTypeVAT, duplicate.Type)
	assert.Equal(t, "2024-05", duplicate.Period)

	// a different type in the same period is fine
	_, err = env.svc.Create(env.ctx, domain.CreateReturnRequest{
		Type:          rates.TaxTypeWithholding,
		Period:        "2024-05",
		TaxableAmount: dec(t, "100"),
	})
	require.NoError(t, err)

	// and so is another owner
	otherCtx := ownerctx.WithOwnerID(context.Background(), env.node.Generate())
	_, err = env.svc.Create(otherCtx, domain.CreateReturnRequest{
		Type:          rates.TaxTypeVAT,
		Period:        "2024-05",
		TaxableAmount: dec(t, "100"),
	})
	require.NoError(t, err)
}

func TestReturnTransitionGrid(t *testing.T) {
	env := newTestEnv(t)

	statuses := []domain.ReturnStatus{
		domain.ReturnStatusDraft,
		domain.ReturnStatusSubmitted,
		domain.ReturnStatusPaid,
		domain.ReturnStatusOverdue,
		domain.ReturnStatusRejected,
		domain.ReturnStatusCancelled,
	}

	period := 0
	for _, from := range statuses {
		for _, to := range statuses {
			period++
			ret, err := env.svc.Create(env.ctx, domain.CreateReturnRequest{
				Type:          rates.TaxTypeStamp,
				Period:        periodString(period),
				TaxableAmount: dec(t, "100"),
			})
			require.NoError(t, err)
			require.NoError(t, env.db.Model(&domain.TaxReturn{}).
				Where("id = ?", ret.ID).
				Update("status", from).Error)

			updated, err := env.svc.Transition(env.ctx, domain.TransitionRequest{
				ReturnID: ret.ID.String(),
				Status:   to,
			})
			if domain.Transitions.Can(from, to) {
				require.NoError(t, err, "%s -> %s should be allowed", from, to)
				assert.Equal(t, to, updated.Status)
			} else {
				var invalid *lifecycle.InvalidTransitionError
				require.True(t, errors.As(err, &invalid), "%s -> %s should be rejected, got %v", from, to, err)
			}
		}
	}
}

// periodString spreads test fixtures over distinct months so the unique
// owner+type+period index never trips.
func periodString(n int) string {
	return fmt.Sprintf("%04d-%02d", 2000+n/12, n%12+1)
}

func TestSubmitSetsTimestamp(t *testing.T) {
	env := newTestEnv(t)

	ret, err := env.svc.Create(env.ctx, domain.CreateReturnRequest{
		Type:          rates.TaxTypeIncome,
		Period:        "2024-06",
		TaxableAmount: dec(t, "1000"),
	})
	require.NoError(t, err)

	submitted, err := env.svc.Transition(env.ctx, domain.TransitionRequest{
		ReturnID: ret.ID.String(),
		Status:   domain.ReturnStatusSubmitted,
	})
	require.NoError(t, err)
	require.NotNil(t, submitted.SubmittedAt)

	paid, err := env.svc.Transition(env.ctx, domain.TransitionRequest{
		ReturnID: ret.ID.String(),
		Status:   domain.ReturnStatusPaid,
	})
	require.NoError(t, err)
	require.NotNil(t, paid.PaidAt)
}

func TestDeleteRules(t *testing.T) {
	env := newTestEnv(t)

	draft, err := env.svc.Create(env.ctx, domain.CreateReturnRequest{
		Type:          rates.TaxTypeVAT,
		Period:        "2024-07",
		TaxableAmount: dec(t, "100"),
	})
	require.NoError(t, err)
	require.NoError(t, env.svc.Delete(env.ctx, draft.ID.String()))

	submitted, err := env.svc.Create(env.ctx, domain.CreateReturnRequest{
		Type:          rates.TaxTypeVAT,
		Period:        "2024-08",
		TaxableAmount: dec(t, "100"),
	})
	require.NoError(t, err)
	_, err = env.svc.Transition(env.ctx, domain.TransitionRequest{
		ReturnID: submitted.ID.String(),
		Status:   domain.ReturnStatusSubmitted,
	})
	require.NoError(t, err)

	err = env.svc.Delete(env.ctx, submitted.ID.String())
	var immutable *lifecycle.ImmutableStateError
	require.True(t, errors.As(err, &immutable))
	assert.Equal(t, string(domain.ReturnStatusSubmitted), immutable.Status)
}

func TestDeleteFreesPeriod(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.svc.Create(env.ctx, domain.CreateReturnRequest{
		Type:          rates.TaxTypeVAT,
		Period:        "2024-06",
		TaxableAmount: dec(t, "100"),
	})
	require.NoError(t, err)
	require.NoError(t, env.svc.Delete(env.ctx, first.ID.String()))

	// the soft-deleted return no longer occupies the period slot
	second, err := env.svc.Create(env.ctx, domain.CreateReturnRequest{
		Type:          rates.TaxTypeVAT,
		Period:        "2024-06",
		TaxableAmount: dec(t, "250"),
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	resp, err := env.svc.List(env.ctx, domain.ListReturnRequest{Type: rates.TaxTypeVAT})
	require.NoError(t, err)
	require.Len(t, resp.Returns, 1)
	assert.Equal(t, second.ID, resp.Returns[0].ID)
}

func TestListFilters(t *testing.T) {
	env := newTestEnv(t)

	for i, taxType := range []rates.TaxType{rates.TaxTypeVAT, rates.TaxTypeVAT, rates.TaxTypeCorporate} {
		_, err := env.svc.Create(env.ctx, domain.CreateReturnRequest{
			Type:          taxType,
			Period:        periodString(100 + i),
			TaxableAmount: dec(t, "100"),
		})
		require.NoError(t, err)
	}

	resp, err := env.svc.List(env.ctx, domain.ListReturnRequest{Type: rates.TaxTypeVAT})
	require.NoError(t, err)
	assert.Len(t, resp.Returns, 2)

	resp, err = env.svc.List(env.ctx, domain.ListReturnRequest{Status: domain.ReturnStatusDraft})
	require.NoError(t, err)
	assert.Len(t, resp.Returns, 3)
}
