package reconcile

import (
	"context"
	"errors"
	"strings"
	"testing"

	"invoice-reconciler/core/documents"
	"invoice-reconciler/core/reconcile"
	"invoice-reconciler/core/storage/mocks"
	docstore "invoice-reconciler/feature/documents"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestService_Reconcile(t *testing.T) {
	svc, repo := setupService(t, nil)

	inv, err := documents.DecodeInvoice(strings.NewReader(invoiceJSON))
	require.NoError(t, err)
	po, err := documents.DecodePO(strings.NewReader(poJSON))
	require.NoError(t, err)

	outcome, err := svc.Reconcile(context.Background(), "alice", inv, po, nil)

	require.NoError(t, err)
	assert.True(t, outcome.IsMismatch)
	require.Len(t, outcome.Issues, 1)
	assert.Equal(t, reconcile.IssueQuantityOrRate, outcome.Issues[0].Issue)

	log := onlyLog(t, repo)
	assert.Equal(t, "alice", log.UserID)
	assert.Equal(t, "PO", log.ComparedDocumentType)
	assert.Equal(t, 1, log.MismatchCount)
}

func TestService_ReconcileStored(t *testing.T) {
	client := new(mocks.Client)
	expectObject(client, "parsed/Invoice/INV-1.json", invoiceJSON)
	expectObject(client, "parsed/PO/P-1.json", poJSON)
	expectReport(client, "reports/INV-1.json")

	svc, repo := setupService(t, client)
	outcome, err := svc.ReconcileStored(context.Background(), "", StoredRequest{Invoice: "INV-1"})

	require.NoError(t, err)
	assert.True(t, outcome.IsMismatch)
	assert.Equal(t, "Acme Supplies", outcome.VendorName)
	assert.Equal(t, reconcile.DefaultUser, onlyLog(t, repo).UserID)
	client.AssertExpectations(t)
}

func TestService_ReconcileStored_MissingCompanion(t *testing.T) {
	client := new(mocks.Client)
	expectObject(client, "parsed/Invoice/INV-1.json", invoiceJSON)
	expectMissing(client, "parsed/PO/P-1.json")
	expectReport(client, "reports/INV-1.json")

	svc, repo := setupService(t, client)
	outcome, err := svc.ReconcileStored(context.Background(), "", StoredRequest{Invoice: "INV-1"})

	require.NoError(t, err)
	assert.Equal(t, []reconcile.Issue{{Issue: "PO file not provided for po_number: P-1"}}, outcome.Issues)
	assert.Equal(t, reconcile.StatusError, onlyLog(t, repo).Status)
}

func TestService_ReconcileStored_NamedCompanion(t *testing.T) {
	client := new(mocks.Client)
	expectObject(client, "parsed/Invoice/INV-1.json", invoiceJSON)
	expectObject(client, "parsed/PO/po-scan-7.json", poJSON)
	expectReport(client, "reports/INV-1.json")

	svc, _ := setupService(t, client)
	_, err := svc.ReconcileStored(context.Background(), "", StoredRequest{Invoice: "INV-1", PO: "po-scan-7"})

	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestService_ReconcileStored_Errors(t *testing.T) {
	t.Run("no store", func(t *testing.T) {
		svc, _ := setupService(t, nil)
		_, err := svc.ReconcileStored(context.Background(), "", StoredRequest{Invoice: "INV-1"})
		assert.ErrorIs(t, err, ErrNoStore)
	})

	t.Run("missing invoice", func(t *testing.T) {
		client := new(mocks.Client)
		expectMissing(client, "parsed/Invoice/INV-1.json")

		svc, _ := setupService(t, client)
		_, err := svc.ReconcileStored(context.Background(), "", StoredRequest{Invoice: "INV-1"})
		assert.ErrorIs(t, err, docstore.ErrNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		client := new(mocks.Client)
		expectObject(client, "parsed/Invoice/INV-1.json", invoiceJSON)
		client.On("GetObject", mock.Anything, testBucket, "parsed/PO/P-1.json", mock.Anything).
			Return(nil, errors.New("connection reset"))

		svc, _ := setupService(t, client)
		_, err := svc.ReconcileStored(context.Background(), "", StoredRequest{Invoice: "INV-1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestService_ReportFailureIsNotFatal(t *testing.T) {
	client := new(mocks.Client)
	expectObject(client, "parsed/Invoice/INV-1.json", invoiceJSON)
	expectObject(client, "parsed/PO/P-1.json", poJSON)
	client.On("PutObject", mock.Anything, testBucket, "reports/INV-1.json", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("bucket is read-only"))

	svc, _ := setupService(t, client)
	outcome, err := svc.ReconcileStored(context.Background(), "", StoredRequest{Invoice: "INV-1"})

	require.NoError(t, err)
	assert.NotNil(t, outcome)
}

func TestCompanion(t *testing.T) {
	assert.Equal(t, "P-2", companion(" P-2 ", "P-1"))
	assert.Equal(t, "P-1", companion("", " P-1 "))
	assert.Equal(t, "", companion("", "NULL"))
	assert.Equal(t, "", companion("", ""))
}
