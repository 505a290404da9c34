package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SupabaseClient Supabase GoTrue 认证接口的客户端
// 只封装目录服务用到的四个端点
type SupabaseClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// 编译时检查 SupabaseClient 实现了 Provider 接口
var _ Provider = (*SupabaseClient)(nil)

// NewSupabaseClient 创建 Supabase 客户端
func NewSupabaseClient(baseURL, apiKey string) *SupabaseClient {
	return &SupabaseClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SignIn 用邮箱和密码换取 token
func (c *SupabaseClient) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &Session{
		AccessToken: resp.AccessToken,
		TokenType:   resp.TokenType,
	}, nil
}

// SignUp 注册新用户，username 放在用户元数据里
func (c *SupabaseClient) SignUp(ctx context.Context, email, password, username string) (*SignUpResult, error) {
	var resp struct {
		Email              string `json:"email"`
		ConfirmationSentAt string `json:"confirmation_sent_at"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/v1/signup", "", map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]string{"username": username},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &SignUpResult{
		Email:              resp.Email,
		ConfirmationSentAt: resp.ConfirmationSentAt,
	}, nil
}

// Resend 重发注册验证邮件
func (c *SupabaseClient) Resend(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/v1/resend", "", map[string]string{
		"type":  "signup",
		"email": email,
	}, nil)
}

// GetUser 根据 token 查询当前用户
func (c *SupabaseClient) GetUser(ctx context.Context, token string) (*User, error) {
	var resp struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		UserMetadata struct {
			Username string `json:"username"`
		} `json:"user_metadata"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/v1/user", token, nil, &resp); err != nil {
		return nil, err
	}
	return &User{
		ID:       resp.ID,
		Email:    resp.Email,
		Username: resp.UserMetadata.Username,
	}, nil
}

// do 执行一次请求，非 2xx 响应转换为带提供方错误信息的 error
func (c *SupabaseClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("auth provider request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read auth provider response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("auth provider rejected request: %s", providerMessage(data, resp.StatusCode))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode auth provider response: %w", err)
		}
	}
	return nil
}

// providerMessage 从错误响应中提取人类可读的信息
func providerMessage(data []byte, statusCode int) string {
	var errResp struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(data, &errResp); err == nil {
		switch {
		case errResp.Msg != "":
			return errResp.Msg
		case errResp.Message != "":
			return errResp.Message
		case errResp.ErrorDescription != "":
			return errResp.ErrorDescription
		}
	}
	return fmt.Sprintf("status %d", statusCode)
}
