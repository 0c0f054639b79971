package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finovo/erp-backend/internal/apperrors"
	"github.com/finovo/erp-backend/internal/core/domain"
	portsrepo "github.com/finovo/erp-backend/internal/core/ports/repositories"
	"github.com/finovo/erp-backend/internal/dto"
	"github.com/finovo/erp-backend/internal/middleware"
	"github.com/finovo/erp-backend/internal/utils/accounting"
)

// PostingService is the ledger posting engine. It turns documents and
// payments into balanced journal entries and hands the whole write —
// entry, lines, balance deltas, document status — to the journal
// repository as one transaction.
type PostingService struct {
	journalRepo  portsrepo.JournalRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	documentRepo portsrepo.DocumentRepositoryFacade
}

// NewPostingService creates a new PostingService.
func NewPostingService(
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	documentRepo portsrepo.DocumentRepositoryFacade,
) *PostingService {
	return &PostingService{
		journalRepo:  journalRepo,
		accountRepo:  accountRepo,
		documentRepo: documentRepo,
	}
}

// postingLine pairs a resolved account with the side and amount to post.
type postingLine struct {
	account *domain.Account
	debit   decimal.Decimal
	credit  decimal.Decimal
	desc    string
}

// prePostStatuses returns the document statuses a kind may be posted from.
// Expenses and asset purchases go through the approval engine, so an
// APPROVED document is postable; the rest post straight from draft.
func prePostStatuses(kind domain.DocumentKind) []domain.DocumentStatus {
	switch kind {
	case domain.KindExpense, domain.KindAssetPurchase:
		return []domain.DocumentStatus{domain.DocDraft, domain.DocApproved}
	default:
		return []domain.DocumentStatus{domain.DocDraft}
	}
}

func statusAllowed(status domain.DocumentStatus, allowed []domain.DocumentStatus) bool {
	for _, s := range allowed {
		if s == status {
			return true
		}
	}
	return false
}

// PostDocument posts an eligible document and returns the created entry.
func (s *PostingService) PostDocument(ctx context.Context, rc domain.RequestContext, kind domain.DocumentKind, documentID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.documentRepo.FindDocumentByID(ctx, rc.CompanyID, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Kind != kind {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("document %s is a %s, not a %s", documentID, doc.Kind, kind))
	}

	allowed := prePostStatuses(kind)
	if !statusAllowed(doc.Status, allowed) {
		return nil, apperrors.NewConflictError(fmt.Sprintf("cannot post %s in status %s", kind, doc.Status))
	}

	postingLines, err := s.buildDocumentLines(ctx, doc)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entry, lines, balanceChanges, err := s.assembleEntry(ctx, rc, doc.Kind, doc.DocumentID, doc.DocumentDate, doc.Description, postingLines, now)
	if err != nil {
		return nil, err
	}

	entryID := entry.EntryID
	docUpdate := &portsrepo.DocumentStatusUpdate{
		Kind:           doc.Kind,
		DocumentID:     doc.DocumentID,
		CompanyID:      rc.CompanyID,
		FromStatuses:   allowed,
		ToStatus:       domain.DocPosted,
		JournalEntryID: &entryID,
		PostedAt:       &now,
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines, balanceChanges, docUpdate, nil); err != nil {
		logger.Error("failed to post document", "error", err, "documentID", documentID, "kind", kind)
		return nil, err
	}

	entry.Lines = lines
	logger.Info("document posted",
		"documentID", documentID,
		"kind", kind,
		"entryID", entry.EntryID,
		"entryNumber", entry.EntryNumber,
		"total", entry.TotalDebit,
	)
	return &entry, nil
}

// PostPayment settles a posted bill or invoice with a two-line entry and
// moves the document to PAID.
func (s *PostingService) PostPayment(ctx context.Context, rc domain.RequestContext, req dto.CreatePaymentRequest) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.documentRepo.FindDocumentByID(ctx, rc.CompanyID, req.DocumentID)
	if err != nil {
		return nil, err
	}

	wantKind := domain.KindBill
	if req.Kind == domain.InvoicePayment {
		wantKind = domain.KindInvoice
	}
	if doc.Kind != wantKind {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("%s requires a %s document", req.Kind, wantKind))
	}
	if doc.Status != domain.DocPosted {
		return nil, apperrors.NewConflictError(fmt.Sprintf("cannot pay %s in status %s", doc.Kind, doc.Status))
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewBadRequestError("payment amount must be positive")
	}
	if !req.Amount.Equal(doc.Total) {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("payment amount %s does not settle document total %s", req.Amount, doc.Total))
	}

	var postingLines []postingLine
	switch req.Kind {
	case domain.BillPayment:
		ap, err := s.resolveAccount(ctx, rc.CompanyID, domain.Liability, domain.AccountNameAccountsPayable)
		if err != nil {
			return nil, err
		}
		cash, err := s.resolveAccount(ctx, rc.CompanyID, domain.Asset, domain.AccountNameCash)
		if err != nil {
			return nil, err
		}
		postingLines = []postingLine{
			{account: ap, debit: req.Amount, desc: "Settle supplier bill"},
			{account: cash, credit: req.Amount, desc: "Cash out"},
		}
	case domain.InvoicePayment:
		cash, err := s.resolveAccount(ctx, rc.CompanyID, domain.Asset, domain.AccountNameCash)
		if err != nil {
			return nil, err
		}
		ar, err := s.resolveAccount(ctx, rc.CompanyID, domain.Asset, domain.AccountNameAccountsReceivable)
		if err != nil {
			return nil, err
		}
		postingLines = []postingLine{
			{account: cash, debit: req.Amount, desc: "Cash in"},
			{account: ar, credit: req.Amount, desc: "Settle customer invoice"},
		}
	default:
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown payment kind %s", req.Kind))
	}

	now := time.Now()
	description := fmt.Sprintf("Payment for %s %s", doc.Kind, doc.DocumentNumber)
	entry, lines, balanceChanges, err := s.assembleEntry(ctx, rc, doc.Kind, doc.DocumentID, req.PaymentDate, description, postingLines, now)
	if err != nil {
		return nil, err
	}

	entryID := entry.EntryID
	docUpdate := &portsrepo.DocumentStatusUpdate{
		Kind:         doc.Kind,
		DocumentID:   doc.DocumentID,
		CompanyID:    rc.CompanyID,
		FromStatuses: []domain.DocumentStatus{domain.DocPosted},
		ToStatus:     domain.DocPaid,
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines, balanceChanges, docUpdate, nil); err != nil {
		logger.Error("failed to post payment", "error", err, "documentID", req.DocumentID, "kind", req.Kind)
		return nil, err
	}

	payment := domain.Payment{
		PaymentID:      uuid.NewString(),
		CompanyID:      rc.CompanyID,
		Kind:           req.Kind,
		DocumentID:     doc.DocumentID,
		Amount:         req.Amount,
		PaymentDate:    req.PaymentDate,
		Status:         domain.DocPosted,
		JournalEntryID: &entryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     rc.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: rc.UserID,
		},
	}
	if err := s.documentRepo.SavePayment(ctx, payment); err != nil {
		// The ledger write already committed; the payment row is bookkeeping
		// on top of it, so surface the failure loudly.
		logger.Error("payment entry posted but payment record failed", "error", err, "entryID", entryID)
		return nil, fmt.Errorf("failed to save payment record: %w", err)
	}

	logger.Info("payment posted",
		"paymentID", payment.PaymentID,
		"documentID", doc.DocumentID,
		"kind", req.Kind,
		"amount", req.Amount,
		"entryID", entryID,
	)
	return &payment, nil
}

// buildDocumentLines applies the per-kind posting rule table.
func (s *PostingService) buildDocumentLines(ctx context.Context, doc *domain.Document) ([]postingLine, error) {
	companyID := doc.CompanyID
	switch doc.Kind {
	case domain.KindBill:
		expense, err := s.resolveAccount(ctx, companyID, domain.Expense, domain.AccountNameOperatingExpenses)
		if err != nil {
			return nil, err
		}
		payable, err := s.resolveAccount(ctx, companyID, domain.Liability, domain.AccountNameAccountsPayable)
		if err != nil {
			return nil, err
		}
		lines := []postingLine{{account: expense, debit: doc.Subtotal, desc: doc.Description}}
		if doc.Tax.IsPositive() {
			inputTax, err := s.resolveAccount(ctx, companyID, domain.Asset, domain.AccountNameInputTax)
			if err != nil {
				return nil, err
			}
			lines = append(lines, postingLine{account: inputTax, debit: doc.Tax, desc: "Input tax"})
		}
		return append(lines, postingLine{account: payable, credit: doc.Total, desc: "Amount owed to supplier"}), nil

	case domain.KindInvoice:
		receivable, err := s.resolveAccount(ctx, companyID, domain.Asset, domain.AccountNameAccountsReceivable)
		if err != nil {
			return nil, err
		}
		revenue, err := s.resolveAccount(ctx, companyID, domain.Revenue, domain.AccountNameSalesRevenue)
		if err != nil {
			return nil, err
		}
		lines := []postingLine{
			{account: receivable, debit: doc.Total, desc: "Amount due from customer"},
			{account: revenue, credit: doc.Subtotal, desc: doc.Description},
		}
		if doc.Tax.IsPositive() {
			outputTax, err := s.resolveAccount(ctx, companyID, domain.Liability, domain.AccountNameOutputTax)
			if err != nil {
				return nil, err
			}
			lines = append(lines, postingLine{account: outputTax, credit: doc.Tax, desc: "Output tax"})
		}
		return lines, nil

	case domain.KindExpense:
		expense, err := s.resolveAccount(ctx, companyID, domain.Expense, domain.AccountNameOperatingExpenses)
		if err != nil {
			return nil, err
		}
		cash, err := s.resolveAccount(ctx, companyID, domain.Asset, domain.AccountNameCash)
		if err != nil {
			return nil, err
		}
		return []postingLine{
			{account: expense, debit: doc.Total, desc: doc.Description},
			{account: cash, credit: doc.Total, desc: "Cash out"},
		}, nil

	case domain.KindAssetPurchase:
		assets, err := s.resolveAccount(ctx, companyID, domain.Asset, domain.AccountNameFixedAssets)
		if err != nil {
			return nil, err
		}
		cash, err := s.resolveAccount(ctx, companyID, domain.Asset, domain.AccountNameCash)
		if err != nil {
			return nil, err
		}
		return []postingLine{
			{account: assets, debit: doc.Total, desc: doc.Description},
			{account: cash, credit: doc.Total, desc: "Cash out"},
		}, nil

	case domain.KindTaxTransaction:
		taxExpense, err := s.resolveAccount(ctx, companyID, domain.Expense, domain.AccountNameTaxExpense)
		if err != nil {
			return nil, err
		}
		taxPayable, err := s.resolveAccount(ctx, companyID, domain.Liability, domain.AccountNameTaxPayable)
		if err != nil {
			return nil, err
		}
		return []postingLine{
			{account: taxExpense, debit: doc.Total, desc: doc.Description},
			{account: taxPayable, credit: doc.Total, desc: "Tax owed"},
		}, nil
	}
	return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown document kind %s", doc.Kind))
}

// assembleEntry turns posting lines into a POSTED journal entry with
// numbered lines and the signed balance delta per account, after checking
// the double-entry law.
func (s *PostingService) assembleEntry(
	ctx context.Context,
	rc domain.RequestContext,
	sourceKind domain.DocumentKind,
	sourceID string,
	entryDate time.Time,
	description string,
	postingLines []postingLine,
	now time.Time,
) (domain.JournalEntry, []domain.JournalLine, map[string]decimal.Decimal, error) {
	entryID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     rc.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: rc.UserID,
	}

	lines := make([]domain.JournalLine, 0, len(postingLines))
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i, pl := range postingLines {
		lines = append(lines, domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    pl.account.AccountID,
			Description:  pl.desc,
			DebitAmount:  pl.debit,
			CreditAmount: pl.credit,
			LineNumber:   i + 1,
			AuditFields:  audit,
		})
		totalDebit = totalDebit.Add(pl.debit)
		totalCredit = totalCredit.Add(pl.credit)
	}

	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return domain.JournalEntry{}, nil, nil, apperrors.NewBadRequestError(err.Error())
	}

	balanceChanges := make(map[string]decimal.Decimal, len(postingLines))
	for i, pl := range postingLines {
		signed, err := accounting.CalculateSignedAmount(lines[i], pl.account.AccountType)
		if err != nil {
			return domain.JournalEntry{}, nil, nil, apperrors.NewInternalServerError(err.Error())
		}
		balanceChanges[pl.account.AccountID] = balanceChanges[pl.account.AccountID].Add(signed)
	}

	entryNumber, err := s.journalRepo.NextEntryNumber(ctx)
	if err != nil {
		return domain.JournalEntry{}, nil, nil, fmt.Errorf("failed to reserve entry number: %w", err)
	}

	postedAt := now
	entry := domain.JournalEntry{
		EntryID:     entryID,
		CompanyID:   rc.CompanyID,
		EntryNumber: entryNumber,
		EntryDate:   entryDate,
		Description: description,
		SourceKind:  sourceKind,
		SourceID:    sourceID,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Status:      domain.EntryPosted,
		PostedAt:    &postedAt,
		AuditFields: audit,
	}
	return entry, lines, balanceChanges, nil
}

// resolveAccount finds a required posting account by well-known name,
// translating absence into ErrMissingAccount.
func (s *PostingService) resolveAccount(ctx context.Context, companyID string, accountType domain.AccountType, name string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByName(ctx, companyID, accountType, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(400, fmt.Sprintf("required account %q (%s) is not configured", name, accountType), apperrors.ErrMissingAccount)
		}
		return nil, fmt.Errorf("failed to resolve account %q: %w", name, err)
	}
	if !account.IsActive {
		return nil, apperrors.NewAppError(400, fmt.Sprintf("required account %q (%s) is inactive", name, accountType), apperrors.ErrMissingAccount)
	}
	return account, nil
}
