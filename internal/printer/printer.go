package printer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"vajanpos/backend/internal/domain"
	"vajanpos/backend/internal/xid"
)

// Dispatcher is the opaque print sink. Callers learn success or failure
// and nothing else; retry policy belongs to the operator, not here.
type Dispatcher interface {
	Dispatch(ctx context.Context, doc domain.Document) error
}

// BridgeDispatcher POSTs the rendered document to a local printer
// bridge, the small helper process that owns the USB/Bluetooth printer.
type BridgeDispatcher struct {
	url    string
	client *http.Client
}

func NewBridgeDispatcher(url string) *BridgeDispatcher {
	return &BridgeDispatcher{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type bridgePayload struct {
	JobID        string `json:"job_id"`
	BillNumber   int    `json:"bill_number"`
	EscposBase64 string `json:"escpos_base64"`
	PreviewText  string `json:"preview_text"`
}

func (d *BridgeDispatcher) Dispatch(ctx context.Context, doc domain.Document) error {
	payload, err := json.Marshal(bridgePayload{
		JobID:        xid.New("job"),
		BillNumber:   doc.BillNumber,
		EscposBase64: doc.EscposBase64,
		PreviewText:  doc.Text,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("printer bridge returned %d", resp.StatusCode)
	}
	return nil
}

// LogDispatcher is the development sink: it writes the receipt preview
// to the process log instead of printing.
type LogDispatcher struct{}

func (LogDispatcher) Dispatch(_ context.Context, doc domain.Document) error {
	log.Printf("printer: bill %d\n%s", doc.BillNumber, doc.Text)
	return nil
}
