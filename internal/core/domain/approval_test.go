package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/finovo/erp-backend/internal/core/domain"
)

func TestPriorityForAmount(t *testing.T) {
	testCases := []struct {
		name     string
		wfType   domain.WorkflowType
		amount   int64
		expected domain.Priority
	}{
		{"expense below all bands", domain.WorkflowExpense, 9_999, domain.PriorityLow},
		{"expense at medium boundary", domain.WorkflowExpense, 10_000, domain.PriorityMedium},
		{"expense at high boundary", domain.WorkflowExpense, 25_000, domain.PriorityHigh},
		{"expense just under urgent", domain.WorkflowExpense, 49_999, domain.PriorityHigh},
		{"expense at urgent boundary", domain.WorkflowExpense, 50_000, domain.PriorityUrgent},
		{"expense far above urgent", domain.WorkflowExpense, 1_000_000, domain.PriorityUrgent},

		{"asset purchase uses wider bands", domain.WorkflowAssetPurchase, 19_999, domain.PriorityLow},
		{"asset purchase at medium boundary", domain.WorkflowAssetPurchase, 20_000, domain.PriorityMedium},
		{"asset purchase at high boundary", domain.WorkflowAssetPurchase, 50_000, domain.PriorityHigh},
		{"asset purchase at urgent boundary", domain.WorkflowAssetPurchase, 100_000, domain.PriorityUrgent},

		{"general falls back to expense bands", domain.WorkflowGeneral, 30_000, domain.PriorityHigh},
		{"purchase order falls back to expense bands", domain.WorkflowPurchaseOrder, 60_000, domain.PriorityUrgent},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.PriorityForAmount(tc.wfType, decimal.NewFromInt(tc.amount))
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestWorkflowTypeForKind(t *testing.T) {
	assert.Equal(t, domain.WorkflowExpense, domain.WorkflowTypeForKind(domain.KindExpense))
	assert.Equal(t, domain.WorkflowAssetPurchase, domain.WorkflowTypeForKind(domain.KindAssetPurchase))
	assert.Equal(t, domain.WorkflowPurchaseOrder, domain.WorkflowTypeForKind(domain.KindBill))
	assert.Equal(t, domain.WorkflowGeneral, domain.WorkflowTypeForKind(domain.KindInvoice))
	assert.Equal(t, domain.WorkflowGeneral, domain.WorkflowTypeForKind(domain.KindTaxTransaction))
}

func TestRequestStatusTerminal(t *testing.T) {
	assert.False(t, domain.RequestPending.Terminal())
	assert.False(t, domain.RequestEscalated.Terminal())
	assert.True(t, domain.RequestCompleted.Terminal())
	assert.True(t, domain.RequestRejected.Terminal())
	assert.True(t, domain.RequestCancelled.Terminal())
}
