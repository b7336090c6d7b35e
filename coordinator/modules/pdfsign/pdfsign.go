package pdfsign

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"
)

// Result is the tri-state outcome of the cryptographic service.
// Expected failures come back as ResultGeneralError, not as transport
// errors.
type Result string

const (
	ResultSuccess      = Result("success")
	ResultGeneralError = Result("general_error")
)

// PrepareResponse carries a fresh challenge digest to be signed
// externally plus the intermediate PDF artifact the embed step needs.
type PrepareResponse struct {
	Result Result `json:"result"`
	PDF    []byte `json:"pdf"`
	Hash   []byte `json:"hash"`
}

type EmbedResponse struct {
	Result Result `json:"result"`
	PDF    []byte `json:"pdf"`
}

// SignService is the prepare/embed collaborator. The private key never
// passes through here: Prepare yields a digest for the smart card to
// sign, Embed folds the externally produced signature bytes back in.
type SignService interface {
	Prepare(ctx context.Context, fieldNames []string, image []byte, pdf []byte) (*PrepareResponse, error)
	Embed(ctx context.Context, pdf []byte, signedHash []byte) (*EmbedResponse, error)
}

var _ SignService = (*HTTPSignService)(nil)

// HTTPSignService talks to the platform's PDF signing backend.
type HTTPSignService struct {
	baseURL string
	client  *http.Client
}

func NewHTTPSignService(baseURL string, timeout time.Duration) *HTTPSignService {
	return &HTTPSignService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type prepareRequest struct {
	FieldNames []string `json:"field_names"`
	Image      []byte   `json:"image"`
	PDF        []byte   `json:"pdf"`
}

type embedRequest struct {
	PDF        []byte `json:"pdf"`
	SignedHash []byte `json:"signed_hash"`
}

func (s *HTTPSignService) Prepare(ctx context.Context, fieldNames []string, image []byte, pdf []byte) (*PrepareResponse, error) {
	var response PrepareResponse
	if err := s.post(ctx, "/prepareSignature", &prepareRequest{
		FieldNames: fieldNames,
		Image:      image,
		PDF:        pdf,
	}, &response); err != nil {
		return nil, fmt.Errorf("failed to call prepareSignature: %w", err)
	}

	return &response, nil
}

func (s *HTTPSignService) Embed(ctx context.Context, pdf []byte, signedHash []byte) (*EmbedResponse, error) {
	var response EmbedResponse
	if err := s.post(ctx, "/embedSignature", &embedRequest{
		PDF:        pdf,
		SignedHash: signedHash,
	}, &response); err != nil {
		return nil, fmt.Errorf("failed to call embedSignature: %w", err)
	}

	return &response, nil
}

func (s *HTTPSignService) post(ctx context.Context, path string, request, response interface{}) error {
	requestBz, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(requestBz))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	responseBz, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("signing backend returned status %d: %s", resp.StatusCode, string(responseBz))
	}

	if err := json.Unmarshal(responseBz, response); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}
