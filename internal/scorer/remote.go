package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/purabshah12/beacon/internal/candidate"
	httpclient "github.com/purabshah12/beacon/internal/common/http"
	"github.com/purabshah12/beacon/internal/common/logger"
)

// RemoteScorer calls an external inference service that compares one text
// query against a batch of images. Candidates whose files cannot be read are
// skipped locally before the call.
type RemoteScorer struct {
	baseURL string
	client  *httpclient.Client
	logger  logger.Logger
}

type scoreResponse struct {
	Scores map[string]float64 `json:"scores"`
}

func NewRemoteScorer(baseURL string, timeout time.Duration, log logger.Logger) *RemoteScorer {
	return &RemoteScorer{
		baseURL: baseURL,
		client:  httpclient.NewClient(timeout),
		logger:  log.WithFields(map[string]interface{}{"component": "remote-scorer"}),
	}
}

func (s *RemoteScorer) Score(ctx context.Context, description string, candidates []candidate.Candidate) (map[string]float64, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("description", description); err != nil {
		return nil, fmt.Errorf("write description field: %w", err)
	}

	attached := 0
	for _, c := range candidates {
		if err := s.attachImage(writer, c); err != nil {
			s.logger.Warn("skipping candidate image", map[string]interface{}{
				"identifier": c.Identifier,
				"error":      err.Error(),
			})
			continue
		}
		attached++
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	if attached == 0 {
		// Nothing the model could look at. The ranker reports this as a
		// no-scored-candidates failure.
		return map[string]float64{}, nil
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/score", &body)
	if err != nil {
		return nil, fmt.Errorf("build score request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.DoWithContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("score request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("score request returned %d: %s", resp.StatusCode, payload)
	}

	var parsed scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode score response: %w", err)
	}

	return parsed.Scores, nil
}

func (s *RemoteScorer) attachImage(writer *multipart.Writer, c candidate.Candidate) error {
	f, err := os.Open(c.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	part, err := writer.CreateFormFile("images", c.Identifier)
	if err != nil {
		return err
	}

	_, err = io.Copy(part, f)
	return err
}
