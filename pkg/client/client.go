package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	storage    Storage
}

// NewClient returns an API client. When storage holds a token it is sent
// as a bearer token on every request.
func NewClient(baseURL string, storage Storage) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		storage: storage,
	}
}

type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.storage != nil {
		if token, ok := c.storage.Get(KeyToken); ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var body struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, &body) == nil && body.Error != "" {
			apiErr.Message, apiErr.Code = body.Error, body.Code
		} else {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return apiErr
	}

	switch v := out.(type) {
	case nil:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	case *string:
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		*v = string(raw)
		return nil
	default:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	ctype := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
		ctype = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, body, ctype)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func idPath(prefix string, id uint) string {
	return prefix + "/" + strconv.FormatUint(uint64(id), 10)
}

func (c *Client) ListProducts(ctx context.Context, f ProductFilter) ([]Product, error) {
	q := url.Values{}
	if f.Name != "" {
		q.Set("nome", f.Name)
	}
	if f.SupplierID != 0 {
		q.Set("fornecedorId", strconv.FormatUint(uint64(f.SupplierID), 10))
	}
	if f.PriceOrder != "" {
		q.Set("ordemPreco", f.PriceOrder)
	}

	path := "/produtos"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []Product
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id uint) (*Product, error) {
	var out Product
	if err := c.doJSON(ctx, http.MethodGet, idPath("/produtos", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SearchProducts(ctx context.Context, query string) (int64, []Product, error) {
	var out struct {
		Total    int64     `json:"total"`
		Products []Product `json:"produtos"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/produtos/search?q="+url.QueryEscape(query), nil, &out); err != nil {
		return 0, nil, err
	}
	return out.Total, out.Products, nil
}

func (c *Client) CreateProduct(ctx context.Context, form ProductForm) (uint, error) {
	var out created
	if err := c.doProductForm(ctx, http.MethodPost, "/produtos", form, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id uint, form ProductForm) error {
	return c.doProductForm(ctx, http.MethodPut, idPath("/produtos", id), form, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, idPath("/produtos", id), nil, nil)
}

func (c *Client) doProductForm(ctx context.Context, method, path string, form ProductForm, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"nome":         form.Name,
		"fornecedorId": strconv.FormatUint(uint64(form.SupplierID), 10),
	}
	if form.Description != nil {
		fields["descricao"] = *form.Description
	}
	if form.Price != nil {
		fields["preco"] = strconv.FormatFloat(*form.Price, 'f', -1, 64)
	}
	if form.Quantity != nil {
		fields["quantidade"] = strconv.Itoa(*form.Quantity)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("write field %s: %w", k, err)
		}
	}

	if form.ImagePath != "" {
		f, err := os.Open(form.ImagePath)
		if err != nil {
			return fmt.Errorf("open image: %w", err)
		}
		defer f.Close()

		fw, err := mw.CreateFormFile("imagem", filepath.Base(form.ImagePath))
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(fw, f); err != nil {
			return fmt.Errorf("copy image: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart: %w", err)
	}

	req, err := c.newRequest(ctx, method, path, &buf, mw.FormDataContentType())
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) ListSuppliers(ctx context.Context) ([]Supplier, error) {
	var out []Supplier
	if err := c.doJSON(ctx, http.MethodGet, "/fornecedores", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSupplier(ctx context.Context, id uint) (*Supplier, error) {
	var out Supplier
	if err := c.doJSON(ctx, http.MethodGet, idPath("/fornecedores", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSupplier(ctx context.Context, s Supplier) (uint, error) {
	var out created
	if err := c.doJSON(ctx, http.MethodPost, "/fornecedores", s, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) UpdateSupplier(ctx context.Context, id uint, s Supplier) error {
	return c.doJSON(ctx, http.MethodPut, idPath("/fornecedores", id), s, nil)
}

func (c *Client) DeleteSupplier(ctx context.Context, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, idPath("/fornecedores", id), nil, nil)
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (string, error) {
	var msg string
	if err := c.doJSON(ctx, http.MethodPost, "/register", req, &msg); err != nil {
		return "", err
	}
	return msg, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	in := map[string]string{"email": email, "senha": password}
	if err := c.doJSON(ctx, http.MethodPost, "/login", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]UserRecord, error) {
	var out []UserRecord
	if err := c.doJSON(ctx, http.MethodGet, "/usuarios", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
