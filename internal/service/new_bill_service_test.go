package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Sevrus/billed/internal/dto"
	"github.com/Sevrus/billed/internal/models"
	"github.com/Sevrus/billed/internal/routes"
	"github.com/Sevrus/billed/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var testSession = session.Session{Email: "employee@test.tld"}

func validForm() dto.BillForm {
	return dto.BillForm{
		Type:       models.ExpenseTypeTransport,
		Name:       "Vol Paris-Bordeaux",
		Date:       "2023-04-01",
		Amount:     42,
		VAT:        "18",
		Pct:        20,
		Commentary: "test bill",
	}
}

func TestSelectFileRejectsUnsupportedExtension(t *testing.T) {
	store := &stubStore{}
	svc := NewNewBillService(store, func(string) {}, zap.NewNop())

	for _, name := range []string{"receipt.pdf", "notes.txt", "archive.tar.gz", "noextension"} {
		draft, err := svc.SelectFile(context.Background(), testSession, name, []byte("data"))
		assert.ErrorIs(t, err, ErrUnsupportedFileType, "file %q", name)
		assert.Equal(t, DraftEmpty, draft.State)
		assert.Empty(t, draft.FileName)
	}

	// No upload was ever attempted.
	assert.Zero(t, store.createCalls)
	assert.Equal(t, DraftEmpty, svc.DraftFor(testSession.Email).State)
}

func TestSelectFileAcceptsImages(t *testing.T) {
	store := &stubStore{
		createFn: func(ctx context.Context, draft models.BillDraft) (models.BillCreated, error) {
			return models.BillCreated{FileURL: "U", Key: "K"}, nil
		},
	}
	svc := NewNewBillService(store, func(string) {}, zap.NewNop())

	draft, err := svc.SelectFile(context.Background(), testSession, "photo.jpeg", []byte("data"))
	require.NoError(t, err)

	assert.Equal(t, 1, store.createCalls)
	assert.Equal(t, "employee@test.tld", store.lastCreate.Email)
	assert.Equal(t, DraftFileAccepted, draft.State)
	assert.Equal(t, "U", draft.FileURL)
	assert.Equal(t, "K", draft.BillID)
	assert.Equal(t, "photo.jpeg", draft.FileName)

	// The draft survives for the later submit.
	assert.Equal(t, draft, svc.DraftFor(testSession.Email))
}

func TestSelectFileExtensionCaseInsensitive(t *testing.T) {
	store := &stubStore{
		createFn: func(ctx context.Context, draft models.BillDraft) (models.BillCreated, error) {
			return models.BillCreated{FileURL: "U", Key: "K"}, nil
		},
	}
	svc := NewNewBillService(store, func(string) {}, zap.NewNop())

	for _, name := range []string{"SCAN.PNG", "photo.Jpg", "pic.JPEG"} {
		_, err := svc.SelectFile(context.Background(), testSession, name, []byte("data"))
		assert.NoError(t, err, "file %q", name)
	}
	assert.Equal(t, 3, store.createCalls)
}

func TestSelectFileUploadFailureIsSwallowedAndLogged(t *testing.T) {
	uploadErr := errors.New("Erreur serveur")
	store := &stubStore{
		createFn: func(ctx context.Context, draft models.BillDraft) (models.BillCreated, error) {
			return models.BillCreated{}, uploadErr
		},
	}
	core, logs := observer.New(zapcore.ErrorLevel)
	svc := NewNewBillService(store, func(string) {}, zap.New(core))

	draft, err := svc.SelectFile(context.Background(), testSession, "photo.jpeg", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, DraftEmpty, draft.State)

	entries := logs.FilterMessage("File upload failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, uploadErr, loggedError(t, entries[0]))
}

func TestSelectFileLastWriteWins(t *testing.T) {
	urls := []string{"U1", "U2"}
	keys := []string{"K1", "K2"}
	call := 0
	store := &stubStore{
		createFn: func(ctx context.Context, draft models.BillDraft) (models.BillCreated, error) {
			created := models.BillCreated{FileURL: urls[call], Key: keys[call]}
			call++
			return created, nil
		},
	}
	svc := NewNewBillService(store, func(string) {}, zap.NewNop())

	_, err := svc.SelectFile(context.Background(), testSession, "first.png", []byte("a"))
	require.NoError(t, err)
	_, err = svc.SelectFile(context.Background(), testSession, "second.png", []byte("b"))
	require.NoError(t, err)

	draft := svc.DraftFor(testSession.Email)
	assert.Equal(t, "U2", draft.FileURL)
	assert.Equal(t, "K2", draft.BillID)
	assert.Equal(t, "second.png", draft.FileName)
}

func TestSubmitFinalizesBill(t *testing.T) {
	store := &stubStore{
		createFn: func(ctx context.Context, draft models.BillDraft) (models.BillCreated, error) {
			return models.BillCreated{FileURL: "U", Key: "K"}, nil
		},
	}
	var navigated []string
	svc := NewNewBillService(store, func(route string) { navigated = append(navigated, route) }, zap.NewNop())

	_, err := svc.SelectFile(context.Background(), testSession, "receipt.jpg", []byte("data"))
	require.NoError(t, err)

	bill, err := svc.Submit(context.Background(), testSession, validForm())
	require.NoError(t, err)

	require.Equal(t, 1, store.updateCalls)
	sent := store.lastUpdate
	assert.Equal(t, "K", sent.ID)
	assert.Equal(t, models.BillStatusPending, sent.Status)
	assert.Equal(t, models.ExpenseTypeTransport, sent.Type)
	assert.Equal(t, "Vol Paris-Bordeaux", sent.Name)
	assert.Equal(t, "2023-04-01", sent.Date)
	assert.Equal(t, 42, sent.Amount)
	assert.Equal(t, "18", sent.VAT)
	assert.Equal(t, 20, sent.Pct)
	assert.Equal(t, "U", sent.FileURL)
	assert.Equal(t, "receipt.jpg", sent.FileName)
	assert.Equal(t, "employee@test.tld", sent.Email)

	assert.Equal(t, models.BillStatusPending, bill.Status)
	assert.Equal(t, []string{routes.Bills}, navigated)
	assert.Equal(t, DraftSubmitted, svc.DraftFor(testSession.Email).State)
}

func TestSubmitFailureLogsExactErrorAndSkipsNavigation(t *testing.T) {
	updateErr := errors.New("Erreur 500")
	store := &stubStore{
		createFn: func(ctx context.Context, draft models.BillDraft) (models.BillCreated, error) {
			return models.BillCreated{FileURL: "U", Key: "K"}, nil
		},
		updateFn: func(ctx context.Context, bill models.Bill) (models.Bill, error) {
			return models.Bill{}, updateErr
		},
	}
	core, logs := observer.New(zapcore.ErrorLevel)
	var navigated []string
	svc := NewNewBillService(store, func(route string) { navigated = append(navigated, route) }, zap.New(core))

	_, err := svc.SelectFile(context.Background(), testSession, "receipt.jpg", []byte("data"))
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), testSession, validForm())
	assert.ErrorIs(t, err, updateErr)

	assert.Empty(t, navigated)
	assert.Equal(t, DraftFailed, svc.DraftFor(testSession.Email).State)

	entries := logs.FilterMessage("Bill submission failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, updateErr, loggedError(t, entries[0]))
}

func TestSubmitWithoutAcceptedFileSendsEmptyReferences(t *testing.T) {
	store := &stubStore{}
	svc := NewNewBillService(store, func(string) {}, zap.NewNop())

	// No file was ever selected; the update still goes out with empty
	// file references rather than crashing.
	_, err := svc.Submit(context.Background(), testSession, validForm())
	require.NoError(t, err)

	require.Equal(t, 1, store.updateCalls)
	assert.Empty(t, store.lastUpdate.ID)
	assert.Empty(t, store.lastUpdate.FileURL)
	assert.Empty(t, store.lastUpdate.FileName)
	assert.Equal(t, models.BillStatusPending, store.lastUpdate.Status)
}

func TestSubmitRejectsUnknownExpenseType(t *testing.T) {
	store := &stubStore{}
	svc := NewNewBillService(store, func(string) {}, zap.NewNop())

	form := validForm()
	form.Type = "Jets privés"
	_, err := svc.Submit(context.Background(), testSession, form)
	assert.Error(t, err)
	assert.Zero(t, store.updateCalls)
}

func TestSubmitAfterFailureCanRetry(t *testing.T) {
	fail := true
	store := &stubStore{
		createFn: func(ctx context.Context, draft models.BillDraft) (models.BillCreated, error) {
			return models.BillCreated{FileURL: "U", Key: "K"}, nil
		},
		updateFn: func(ctx context.Context, bill models.Bill) (models.Bill, error) {
			if fail {
				return models.Bill{}, errors.New("Erreur 500")
			}
			return bill, nil
		},
	}
	svc := NewNewBillService(store, func(string) {}, zap.NewNop())

	_, err := svc.SelectFile(context.Background(), testSession, "receipt.jpg", []byte("data"))
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), testSession, validForm())
	require.Error(t, err)
	assert.Equal(t, DraftFailed, svc.DraftFor(testSession.Email).State)

	fail = false
	_, err = svc.Submit(context.Background(), testSession, validForm())
	require.NoError(t, err)
	assert.Equal(t, DraftSubmitted, svc.DraftFor(testSession.Email).State)
	// The retry reuses the identifier from the original upload.
	assert.Equal(t, "K", store.lastUpdate.ID)
}

// loggedError digs the error value out of a captured log entry.
func loggedError(t *testing.T, entry observer.LoggedEntry) error {
	t.Helper()
	for _, f := range entry.Context {
		if f.Key == "error" && f.Type == zapcore.ErrorType {
			return f.Interface.(error)
		}
	}
	t.Fatal("no error field in log entry")
	return nil
}
