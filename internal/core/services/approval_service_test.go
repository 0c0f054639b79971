package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finovo/erp-backend/internal/apperrors"
	"github.com/finovo/erp-backend/internal/core/domain"
	portsrepo "github.com/finovo/erp-backend/internal/core/ports/repositories"
	"github.com/finovo/erp-backend/internal/core/services"
	"github.com/finovo/erp-backend/internal/dto"
)

type ApprovalServiceTestSuite struct {
	suite.Suite
	mockApprovalRepo *MockApprovalRepository
	mockDocumentRepo *MockDocumentRepository
	mockNotifier     *MockNotifier
	service          *services.ApprovalService

	companyID   string
	requestorID string
	approverL1  string
	approverL2  string
	rc          domain.RequestContext
}

func (s *ApprovalServiceTestSuite) SetupTest() {
	s.mockApprovalRepo = new(MockApprovalRepository)
	s.mockDocumentRepo = new(MockDocumentRepository)
	s.mockNotifier = new(MockNotifier)
	s.service = services.NewApprovalService(s.mockApprovalRepo, s.mockDocumentRepo, s.mockNotifier)

	s.companyID = uuid.NewString()
	s.requestorID = uuid.NewString()
	s.approverL1 = uuid.NewString()
	s.approverL2 = uuid.NewString()
	s.rc = domain.RequestContext{UserID: s.requestorID, CompanyID: s.companyID}
}

func (s *ApprovalServiceTestSuite) draftExpense(total int64) *domain.Document {
	return &domain.Document{
		DocumentID:  uuid.NewString(),
		CompanyID:   s.companyID,
		Kind:        domain.KindExpense,
		Description: "Conference sponsorship",
		Subtotal:    decimal.NewFromInt(total),
		Tax:         decimal.Zero,
		Total:       decimal.NewFromInt(total),
		Status:      domain.DocDraft,
	}
}

func (s *ApprovalServiceTestSuite) twoLevelWorkflow() (*domain.ApprovalWorkflow, []domain.ApprovalLevel) {
	workflow := &domain.ApprovalWorkflow{
		WorkflowID:      uuid.NewString(),
		CompanyID:       s.companyID,
		Name:            "Expense over 10k",
		Type:            domain.WorkflowExpense,
		ThresholdAmount: decimal.NewFromInt(10_000),
		IsActive:        true,
	}
	levels := []domain.ApprovalLevel{
		{LevelID: uuid.NewString(), WorkflowID: workflow.WorkflowID, Level: 1, ApproverRole: "manager", ApproverID: s.approverL1},
		{LevelID: uuid.NewString(), WorkflowID: workflow.WorkflowID, Level: 2, ApproverRole: "finance", ApproverID: s.approverL2},
	}
	return workflow, levels
}

func (s *ApprovalServiceTestSuite) pendingRequest(workflowID, documentID string, level int, approverID string) *domain.ApprovalRequest {
	return &domain.ApprovalRequest{
		RequestID:    uuid.NewString(),
		CompanyID:    s.companyID,
		WorkflowID:   workflowID,
		RequestorID:  s.requestorID,
		ApproverID:   approverID,
		DocumentKind: domain.KindExpense,
		DocumentID:   documentID,
		Amount:       decimal.NewFromInt(60_000),
		Priority:     domain.PriorityUrgent,
		DueDate:      time.Now().Add(72 * time.Hour),
		Status:       domain.RequestPending,
		CurrentLevel: level,
	}
}

func (s *ApprovalServiceTestSuite) TestSubmitCreatesUrgentRequestAtFirstLevel() {
	ctx := context.Background()
	doc := s.draftExpense(60_000)
	workflow, levels := s.twoLevelWorkflow()

	s.mockDocumentRepo.On("FindDocumentByID", ctx, s.companyID, doc.DocumentID).Return(doc, nil).Once()
	s.mockApprovalRepo.On("FindMatchingWorkflow", ctx, s.companyID, domain.WorkflowExpense, doc.Total).Return(workflow, nil).Once()
	s.mockApprovalRepo.On("FindLevelsByWorkflowID", ctx, workflow.WorkflowID).Return(levels, nil).Once()

	var savedRequest domain.ApprovalRequest
	var savedDocUpdate portsrepo.DocumentStatusUpdate
	s.mockApprovalRepo.On("CreateRequest", ctx,
		mock.AnythingOfType("domain.ApprovalRequest"),
		mock.AnythingOfType("repositories.DocumentStatusUpdate"),
	).Run(func(args mock.Arguments) {
		savedRequest = args.Get(1).(domain.ApprovalRequest)
		savedDocUpdate = args.Get(2).(portsrepo.DocumentStatusUpdate)
	}).Return(nil).Once()
	s.mockNotifier.On("RequestAssigned", ctx, mock.AnythingOfType("domain.ApprovalRequest")).Once()

	request, err := s.service.SubmitForApproval(ctx, s.rc, domain.KindExpense, doc.DocumentID)

	s.Require().NoError(err)
	s.Require().NotNil(request)
	s.Equal(domain.RequestPending, savedRequest.Status)
	s.Equal(1, savedRequest.CurrentLevel)
	s.Equal(s.approverL1, savedRequest.ApproverID)
	s.Equal(domain.PriorityUrgent, savedRequest.Priority)
	s.WithinDuration(time.Now().Add(72*time.Hour), savedRequest.DueDate, time.Minute)

	s.Equal(domain.DocPendingApproval, savedDocUpdate.ToStatus)
	s.Equal([]domain.DocumentStatus{domain.DocDraft}, savedDocUpdate.FromStatuses)
	s.Require().NotNil(savedDocUpdate.ApprovalRequestID)
	s.Equal(savedRequest.RequestID, *savedDocUpdate.ApprovalRequestID)

	s.mockApprovalRepo.AssertExpectations(s.T())
	s.mockNotifier.AssertExpectations(s.T())
}

func (s *ApprovalServiceTestSuite) TestSubmitAutoApprovesWhenNoWorkflowMatches() {
	ctx := context.Background()
	doc := s.draftExpense(500)

	s.mockDocumentRepo.On("FindDocumentByID", ctx, s.companyID, doc.DocumentID).Return(doc, nil).Once()
	s.mockApprovalRepo.On("FindMatchingWorkflow", ctx, s.companyID, domain.WorkflowExpense, doc.Total).Return(nil, apperrors.ErrNotFound).Once()

	var docUpdate portsrepo.DocumentStatusUpdate
	s.mockDocumentRepo.On("UpdateDocumentStatus", ctx,
		mock.AnythingOfType("repositories.DocumentStatusUpdate"),
		s.requestorID,
		mock.AnythingOfType("time.Time"),
	).Run(func(args mock.Arguments) {
		docUpdate = args.Get(1).(portsrepo.DocumentStatusUpdate)
	}).Return(nil).Once()

	request, err := s.service.SubmitForApproval(ctx, s.rc, domain.KindExpense, doc.DocumentID)

	s.Require().NoError(err)
	s.Nil(request)
	s.Equal(domain.DocApproved, docUpdate.ToStatus)
	s.Equal([]domain.DocumentStatus{domain.DocDraft}, docUpdate.FromStatuses)
	s.mockApprovalRepo.AssertNotCalled(s.T(), "CreateRequest", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestSubmitRejectsNonDraftDocument() {
	ctx := context.Background()
	doc := s.draftExpense(60_000)
	doc.Status = domain.DocPosted

	s.mockDocumentRepo.On("FindDocumentByID", ctx, s.companyID, doc.DocumentID).Return(doc, nil).Once()

	request, err := s.service.SubmitForApproval(ctx, s.rc, domain.KindExpense, doc.DocumentID)

	s.Require().Error(err)
	s.Nil(request)
	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *ApprovalServiceTestSuite) TestApproveAdvancesToNextLevel() {
	ctx := context.Background()
	workflow, levels := s.twoLevelWorkflow()
	request := s.pendingRequest(workflow.WorkflowID, uuid.NewString(), 1, s.approverL1)
	approverCtx := domain.RequestContext{UserID: s.approverL1, CompanyID: s.companyID}

	s.mockApprovalRepo.On("FindRequestByID", ctx, s.companyID, request.RequestID).Return(request, nil).Once()
	s.mockApprovalRepo.On("FindLevelsByWorkflowID", ctx, workflow.WorkflowID).Return(levels, nil).Once()

	var transition portsrepo.RequestTransition
	s.mockApprovalRepo.On("TransitionRequest", ctx,
		mock.AnythingOfType("repositories.RequestTransition"),
		(*portsrepo.DocumentStatusUpdate)(nil),
	).Run(func(args mock.Arguments) {
		transition = args.Get(1).(portsrepo.RequestTransition)
	}).Return(nil).Once()
	s.mockNotifier.On("RequestAssigned", ctx, mock.AnythingOfType("domain.ApprovalRequest")).Once()

	updated, err := s.service.ProcessApproval(ctx, approverCtx, request.RequestID, dto.ActionApprove, "looks fine")

	s.Require().NoError(err)
	s.Require().NotNil(updated)
	s.Equal(domain.RequestPending, updated.Status)
	s.Equal(2, updated.CurrentLevel)
	s.Equal(s.approverL2, updated.ApproverID)
	s.Contains(updated.Comments, "looks fine")

	s.Equal(1, transition.ExpectedLevel)
	s.Equal(2, transition.NewLevel)
	s.Equal(domain.RequestPending, transition.NewStatus)
	s.Equal(s.approverL2, transition.NewApproverID)
}

func (s *ApprovalServiceTestSuite) TestApproveAtFinalLevelCompletesAndApprovesDocument() {
	ctx := context.Background()
	workflow, levels := s.twoLevelWorkflow()
	request := s.pendingRequest(workflow.WorkflowID, uuid.NewString(), 2, s.approverL2)
	approverCtx := domain.RequestContext{UserID: s.approverL2, CompanyID: s.companyID}

	s.mockApprovalRepo.On("FindRequestByID", ctx, s.companyID, request.RequestID).Return(request, nil).Once()
	s.mockApprovalRepo.On("FindLevelsByWorkflowID", ctx, workflow.WorkflowID).Return(levels, nil).Once()

	var transition portsrepo.RequestTransition
	var docUpdate *portsrepo.DocumentStatusUpdate
	s.mockApprovalRepo.On("TransitionRequest", ctx,
		mock.AnythingOfType("repositories.RequestTransition"),
		mock.AnythingOfType("*repositories.DocumentStatusUpdate"),
	).Run(func(args mock.Arguments) {
		transition = args.Get(1).(portsrepo.RequestTransition)
		docUpdate = args.Get(2).(*portsrepo.DocumentStatusUpdate)
	}).Return(nil).Once()
	s.mockNotifier.On("RequestCompleted", ctx, mock.AnythingOfType("domain.ApprovalRequest")).Once()

	updated, err := s.service.ProcessApproval(ctx, approverCtx, request.RequestID, dto.ActionApprove, "")

	s.Require().NoError(err)
	s.Equal(domain.RequestCompleted, updated.Status)
	s.Require().NotNil(updated.CompletedAt)

	s.Equal(domain.RequestCompleted, transition.NewStatus)
	s.Require().NotNil(docUpdate)
	s.Equal(domain.DocApproved, docUpdate.ToStatus)
	s.Equal([]domain.DocumentStatus{domain.DocPendingApproval}, docUpdate.FromStatuses)
}

func (s *ApprovalServiceTestSuite) TestRejectAtAnyLevelIsFinal() {
	ctx := context.Background()
	workflow, _ := s.twoLevelWorkflow()
	request := s.pendingRequest(workflow.WorkflowID, uuid.NewString(), 1, s.approverL1)
	approverCtx := domain.RequestContext{UserID: s.approverL1, CompanyID: s.companyID}

	s.mockApprovalRepo.On("FindRequestByID", ctx, s.companyID, request.RequestID).Return(request, nil).Once()

	var transition portsrepo.RequestTransition
	var docUpdate *portsrepo.DocumentStatusUpdate
	s.mockApprovalRepo.On("TransitionRequest", ctx,
		mock.AnythingOfType("repositories.RequestTransition"),
		mock.AnythingOfType("*repositories.DocumentStatusUpdate"),
	).Run(func(args mock.Arguments) {
		transition = args.Get(1).(portsrepo.RequestTransition)
		docUpdate = args.Get(2).(*portsrepo.DocumentStatusUpdate)
	}).Return(nil).Once()
	s.mockNotifier.On("RequestRejected", ctx, mock.AnythingOfType("domain.ApprovalRequest")).Once()

	updated, err := s.service.ProcessApproval(ctx, approverCtx, request.RequestID, dto.ActionReject, "budget exhausted")

	s.Require().NoError(err)
	s.Equal(domain.RequestRejected, updated.Status)
	s.Require().NotNil(updated.RejectedAt)
	s.Contains(updated.Comments, "budget exhausted")

	s.Equal(domain.RequestRejected, transition.NewStatus)
	s.Require().NotNil(docUpdate)
	s.Equal(domain.DocRejected, docUpdate.ToStatus)
	s.mockApprovalRepo.AssertNotCalled(s.T(), "FindLevelsByWorkflowID", mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestProcessRejectsWrongApprover() {
	ctx := context.Background()
	workflow, _ := s.twoLevelWorkflow()
	request := s.pendingRequest(workflow.WorkflowID, uuid.NewString(), 1, s.approverL1)
	intruderCtx := domain.RequestContext{UserID: uuid.NewString(), CompanyID: s.companyID}

	s.mockApprovalRepo.On("FindRequestByID", ctx, s.companyID, request.RequestID).Return(request, nil).Once()

	updated, err := s.service.ProcessApproval(ctx, intruderCtx, request.RequestID, dto.ActionApprove, "")

	s.Require().Error(err)
	s.Nil(updated)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.mockApprovalRepo.AssertNotCalled(s.T(), "TransitionRequest", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestProcessRejectsDecidedRequest() {
	ctx := context.Background()
	workflow, _ := s.twoLevelWorkflow()
	request := s.pendingRequest(workflow.WorkflowID, uuid.NewString(), 2, s.approverL2)
	request.Status = domain.RequestCompleted
	approverCtx := domain.RequestContext{UserID: s.approverL2, CompanyID: s.companyID}

	s.mockApprovalRepo.On("FindRequestByID", ctx, s.companyID, request.RequestID).Return(request, nil).Once()

	updated, err := s.service.ProcessApproval(ctx, approverCtx, request.RequestID, dto.ActionApprove, "")

	s.Require().Error(err)
	s.Nil(updated)
	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *ApprovalServiceTestSuite) TestCancelPendingRequestCancelsDocument() {
	ctx := context.Background()
	workflow, _ := s.twoLevelWorkflow()
	request := s.pendingRequest(workflow.WorkflowID, uuid.NewString(), 1, s.approverL1)

	s.mockApprovalRepo.On("FindRequestByID", ctx, s.companyID, request.RequestID).Return(request, nil).Once()

	var docUpdate *portsrepo.DocumentStatusUpdate
	s.mockApprovalRepo.On("TransitionRequest", ctx,
		mock.AnythingOfType("repositories.RequestTransition"),
		mock.AnythingOfType("*repositories.DocumentStatusUpdate"),
	).Run(func(args mock.Arguments) {
		docUpdate = args.Get(2).(*portsrepo.DocumentStatusUpdate)
	}).Return(nil).Once()

	err := s.service.CancelRequest(ctx, s.rc, request.RequestID)

	s.Require().NoError(err)
	s.Require().NotNil(docUpdate)
	s.Equal(domain.DocCancelled, docUpdate.ToStatus)
	s.Equal([]domain.DocumentStatus{domain.DocPendingApproval}, docUpdate.FromStatuses)
}

func (s *ApprovalServiceTestSuite) TestCancelRejectsDecidedRequest() {
	ctx := context.Background()
	workflow, _ := s.twoLevelWorkflow()
	request := s.pendingRequest(workflow.WorkflowID, uuid.NewString(), 1, s.approverL1)
	request.Status = domain.RequestRejected

	s.mockApprovalRepo.On("FindRequestByID", ctx, s.companyID, request.RequestID).Return(request, nil).Once()

	err := s.service.CancelRequest(ctx, s.rc, request.RequestID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *ApprovalServiceTestSuite) TestCreateWorkflowValidatesLevels() {
	ctx := context.Background()

	cases := []struct {
		name   string
		levels []dto.WorkflowLevelRequest
	}{
		{"no levels", nil},
		{"starts above one", []dto.WorkflowLevelRequest{{Level: 2, ApproverID: s.approverL1}}},
		{"duplicate level", []dto.WorkflowLevelRequest{
			{Level: 1, ApproverID: s.approverL1},
			{Level: 1, ApproverID: s.approverL2},
		}},
		{"gap in levels", []dto.WorkflowLevelRequest{
			{Level: 1, ApproverID: s.approverL1},
			{Level: 3, ApproverID: s.approverL2},
		}},
		{"missing approver", []dto.WorkflowLevelRequest{{Level: 1}}},
	}

	for _, tc := range cases {
		req := dto.CreateWorkflowRequest{
			Name:            "Broken workflow",
			WorkflowType:    domain.WorkflowExpense,
			ThresholdAmount: decimal.NewFromInt(1000),
			Levels:          tc.levels,
		}
		workflow, err := s.service.CreateWorkflow(ctx, s.rc, req)
		s.Require().Error(err, tc.name)
		s.Nil(workflow, tc.name)
		s.ErrorIs(err, apperrors.ErrValidation, tc.name)
	}
	s.mockApprovalRepo.AssertNotCalled(s.T(), "SaveWorkflow", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestCreateWorkflowPersistsSortedLevels() {
	ctx := context.Background()

	var savedLevels []domain.ApprovalLevel
	s.mockApprovalRepo.On("SaveWorkflow", ctx,
		mock.AnythingOfType("domain.ApprovalWorkflow"),
		mock.AnythingOfType("[]domain.ApprovalLevel"),
	).Run(func(args mock.Arguments) {
		savedLevels = args.Get(2).([]domain.ApprovalLevel)
	}).Return(nil).Once()

	req := dto.CreateWorkflowRequest{
		Name:            "Expense chain",
		WorkflowType:    domain.WorkflowExpense,
		ThresholdAmount: decimal.NewFromInt(10_000),
		Levels: []dto.WorkflowLevelRequest{
			{Level: 2, ApproverRole: "finance", ApproverID: s.approverL2},
			{Level: 1, ApproverRole: "manager", ApproverID: s.approverL1},
		},
	}

	workflow, err := s.service.CreateWorkflow(ctx, s.rc, req)

	s.Require().NoError(err)
	s.Require().NotNil(workflow)
	s.True(workflow.IsActive)
	s.Require().Len(savedLevels, 2)
	s.Equal(1, savedLevels[0].Level)
	s.Equal(s.approverL1, savedLevels[0].ApproverID)
	s.Equal(2, savedLevels[1].Level)
}

func TestApprovalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalServiceTestSuite))
}
