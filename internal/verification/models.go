package verification

import "time"

// Code is one issued student verification code. Codes are single use:
// issuing a new one invalidates anything outstanding.
type Code struct {
	ID        int64     `json:"-" db:"id"`
	UserID    int64     `json:"-" db:"user_id"`
	Code      string    `json:"-" db:"code"`
	Attempts  int       `json:"-" db:"attempts"`
	Verified  bool      `json:"-" db:"verified"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// RequestCodeResponse is returned after issuing a code.
type RequestCodeResponse struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// VerifyCodeRequest is the body of POST /verification/verify.
type VerifyCodeRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}
