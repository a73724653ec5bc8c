package otp

import (
	"errors"
	"fmt"
	"time"

	"railbooking/internal/models"
	"railbooking/internal/utils"
)

// ErrDeliveryFailed means the mail transport rejected the code. No record was
// stored: a code nobody received must not sit in the store.
var ErrDeliveryFailed = errors.New("failed to deliver OTP")

// Sender dispatches a code to the address that requested it.
type Sender interface {
	SendOTP(email, code string, validFor time.Duration) error
}

// Authenticator issues and verifies single-use, time-boxed codes.
type Authenticator struct {
	store  Store
	sender Sender
	expiry time.Duration
	now    func() time.Time
}

func NewAuthenticator(store Store, sender Sender, expiry time.Duration) *Authenticator {
	return &Authenticator{
		store:  store,
		sender: sender,
		expiry: expiry,
		now:    time.Now,
	}
}

// Issue generates a fresh code, dispatches it, and only then stores it,
// overwriting any prior pending code for the email. A transport failure
// leaves the store untouched.
func (a *Authenticator) Issue(email string) (string, error) {
	code := utils.NewOTP()

	if err := a.sender.SendOTP(email, code, a.expiry); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	record := models.OTPRecord{
		Email:     email,
		Code:      code,
		ExpiresAt: a.now().Add(a.expiry),
	}
	if err := a.store.Put(record); err != nil {
		return "", fmt.Errorf("failed to store OTP record: %w", err)
	}
	return code, nil
}

// Verify checks the code against the pending record. The record is consumed
// on success and on expiry; a wrong code leaves it pending. Expiry is
// enforced here, lazily, with no background sweep.
func (a *Authenticator) Verify(email, code string) (bool, error) {
	record, ok, err := a.store.Get(email)
	if err != nil {
		return false, fmt.Errorf("failed to read OTP record: %w", err)
	}
	if !ok {
		return false, nil
	}
	if record.Expired(a.now()) {
		if err := a.store.Delete(email); err != nil {
			return false, fmt.Errorf("failed to drop expired OTP: %w", err)
		}
		return false, nil
	}
	if record.Code != code {
		return false, nil
	}
	if err := a.store.Delete(email); err != nil {
		return false, fmt.Errorf("failed to consume OTP: %w", err)
	}
	return true, nil
}
