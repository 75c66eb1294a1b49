package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Sevrus/billed/internal/dto"
	"github.com/Sevrus/billed/internal/models"
	"github.com/Sevrus/billed/internal/routes"
	"github.com/Sevrus/billed/internal/session"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var ErrUnsupportedFileType = errors.New("unsupported file type: only jpg, jpeg and png are accepted")

// DraftState tracks where an in-progress submission stands.
type DraftState string

const (
	DraftEmpty        DraftState = "empty"
	DraftFileAccepted DraftState = "file_accepted"
	DraftSubmitted    DraftState = "submitted"
	DraftFailed       DraftState = "failed"
)

// Draft is the transient state of one in-progress bill: nothing until
// a valid file upload succeeds, then the storage URL and the
// provisional record key the final update must reuse.
type Draft struct {
	State    DraftState
	FileURL  string
	FileName string
	BillID   string
}

var acceptedExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
}

// NewBillService drives the two-phase submission workflow: a valid
// attachment is uploaded first (create), the form is finalized second
// (update). Drafts are keyed by the employee's email; concurrent
// uploads for the same employee race and the last write wins, there is
// no cancellation of a superseded upload.
type NewBillService struct {
	store    BillStore
	navigate func(route string)
	validate *validator.Validate
	logger   *zap.Logger

	mu     sync.Mutex
	drafts map[string]Draft
}

func NewNewBillService(store BillStore, navigate func(route string), logger *zap.Logger) *NewBillService {
	return &NewBillService{
		store:    store,
		navigate: navigate,
		validate: newFormValidator(),
		logger:   logger,
		drafts:   make(map[string]Draft),
	}
}

// SelectFile validates the chosen attachment and, when accepted,
// uploads it to obtain the storage URL and the provisional record key.
// A bad extension resets the draft and returns ErrUnsupportedFileType
// without touching the store. An upload failure is logged and the
// draft stays empty: the submission flow continues degraded rather
// than surfacing the transport error.
func (s *NewBillService) SelectFile(ctx context.Context, sess session.Session, fileName string, content []byte) (Draft, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	if !acceptedExtensions[ext] {
		s.setDraft(sess.Email, Draft{State: DraftEmpty})
		return Draft{State: DraftEmpty}, ErrUnsupportedFileType
	}

	created, err := s.store.Create(ctx, models.BillDraft{
		Email:    sess.Email,
		FileName: fileName,
		Content:  content,
	})
	if err != nil {
		s.logger.Error("File upload failed",
			zap.String("email", sess.Email),
			zap.String("file_name", fileName),
			zap.Error(err),
		)
		s.setDraft(sess.Email, Draft{State: DraftEmpty})
		return Draft{State: DraftEmpty}, nil
	}

	draft := Draft{
		State:    DraftFileAccepted,
		FileURL:  created.FileURL,
		FileName: fileName,
		BillID:   created.Key,
	}
	s.setDraft(sess.Email, draft)
	return draft, nil
}

// Submit finalizes the draft with the form values and a fixed pending
// status. A submission fired before any upload resolved goes through
// with empty file references; the draft state makes that visible to
// callers who want to guard against it. On success the navigation
// callback is invoked once with the bill-list route; on failure the
// exact error goes to the diagnostics sink and the draft is left in
// DraftFailed so the employee can resubmit.
func (s *NewBillService) Submit(ctx context.Context, sess session.Session, form dto.BillForm) (models.Bill, error) {
	if err := s.validate.Struct(form); err != nil {
		return models.Bill{}, err
	}

	draft := s.DraftFor(sess.Email)
	if draft.State != DraftFileAccepted {
		s.logger.Warn("Submitting bill without an accepted file",
			zap.String("email", sess.Email),
			zap.String("draft_state", string(draft.State)),
		)
	}

	bill := models.Bill{
		ID:         draft.BillID,
		Type:       form.Type,
		Name:       form.Name,
		Date:       form.Date,
		Amount:     form.Amount,
		VAT:        form.VAT,
		Pct:        form.Pct,
		Commentary: form.Commentary,
		Status:     models.BillStatusPending,
		FileURL:    draft.FileURL,
		FileName:   draft.FileName,
		Email:      sess.Email,
	}

	updated, err := s.store.Update(ctx, bill)
	if err != nil {
		s.logger.Error("Bill submission failed",
			zap.String("email", sess.Email),
			zap.String("bill_id", draft.BillID),
			zap.Error(err),
		)
		draft.State = DraftFailed
		s.setDraft(sess.Email, draft)
		return models.Bill{}, err
	}

	draft.State = DraftSubmitted
	s.setDraft(sess.Email, draft)
	s.navigate(routes.Bills)

	return updated, nil
}

// DraftFor returns a snapshot of the employee's current draft.
func (s *NewBillService) DraftFor(email string) Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[email]
	if !ok {
		return Draft{State: DraftEmpty}
	}
	return draft
}

func (s *NewBillService) setDraft(email string, draft Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[email] = draft
}

func newFormValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("expensetype", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case models.ExpenseTypeTransport,
			models.ExpenseTypeRestaurant,
			models.ExpenseTypeHotel,
			models.ExpenseTypeOnline,
			models.ExpenseTypeIT,
			models.ExpenseTypeEquipment,
			models.ExpenseTypeOfficeSupply:
			return true
		}
		return false
	})
	return v
}
