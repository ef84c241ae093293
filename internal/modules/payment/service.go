package payment

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"studysphere/internal/domain"
	"studysphere/internal/modules/booking"
)

var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrAmountMismatch   = errors.New("amount mismatch")
)

// GatewayConfig carries the merchant credentials. Password1 signs
// outgoing checkout requests, Password2 verifies result callbacks.
type GatewayConfig struct {
	MerchantLogin string
	Password1     string
	Password2     string
	BaseURL       string
	ResultURL     string
	SuccessURL    string
	IsTest        string
}

type Service struct {
	payments paymentRepo
	bookings bookingCreator
	loggerf  func(format string, args ...interface{})
	cfg      GatewayConfig
}

func NewService(payments paymentRepo, bookings bookingCreator, cfg GatewayConfig, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		payments: payments,
		bookings: bookings,
		loggerf:  loggerf,
		cfg:      cfg,
	}
}

// InitCheckout builds a signed gateway URL for a paid session and
// persists the pending payment. The booking itself is only created by
// HandleResultCallback once the gateway confirms.
func (s *Service) InitCheckout(ctx context.Context, sess *domain.StudySession, studentID int64, studentEmail string) (string, error) {
	if s.cfg.MerchantLogin == "" || s.cfg.Password1 == "" || s.cfg.Password2 == "" {
		return "", fmt.Errorf("payment gateway credentials are not configured")
	}

	outSum := formatAmount(sess.RegistrationFee)
	invID := time.Now().UnixNano()
	shp := map[string]string{
		"session": strconv.FormatInt(sess.ID, 10),
		"student": strconv.FormatInt(studentID, 10),
		"email":   studentEmail,
	}
	signature := s.generateSignatureForInit(outSum, invID, shp)

	u := url.Values{}
	u.Set("MerchantLogin", s.cfg.MerchantLogin)
	u.Set("OutSum", outSum)
	u.Set("InvId", strconv.FormatInt(invID, 10))
	u.Set("Description", "Enrollment: "+sess.Title)
	u.Set("SignatureValue", signature)
	u.Set("IsTest", s.cfg.IsTest)
	if s.cfg.ResultURL != "" {
		u.Set("ResultURL", s.cfg.ResultURL)
	}
	if s.cfg.SuccessURL != "" {
		u.Set("SuccessURL", s.cfg.SuccessURL)
	}
	for k, v := range shp {
		u.Set("Shp_"+k, v)
	}
	paymentURL := s.cfg.BaseURL + "?" + u.Encode()

	p := &domain.GatewayPayment{
		SessionID:    sess.ID,
		StudentID:    studentID,
		StudentEmail: studentEmail,
		OutSum:       outSum,
		InvID:        invID,
		Description:  "Enrollment: " + sess.Title,
		Status:       domain.GatewayPaymentCreated,
		Signature:    signature,
		GatewayURL:   paymentURL,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return "", fmt.Errorf("save payment failed: %w", err)
	}

	return paymentURL, nil
}

// HandleResultCallback verifies the gateway's server-to-server
// confirmation, marks the payment paid and creates the booking. A
// replayed callback is acknowledged without a second booking.
func (s *Service) HandleResultCallback(ctx context.Context, outSum string, invID int64, signature string, shpParams map[string]string, rawBody string) (string, error) {
	valid := strings.EqualFold(signature, s.generateSignatureForResult(outSum, invID, shpParams))
	s.loggerf("level=info msg=gateway result signature validation inv_id=%d signature_valid=%t", invID, valid)
	if !valid {
		_ = s.payments.UpdateStatus(ctx, invID, domain.GatewayPaymentFailed, rawBody, "invalid signature")
		return "", ErrInvalidSignature
	}

	p, err := s.payments.GetByInvID(ctx, invID)
	if err != nil {
		return "", err
	}
	if !amountEqual(outSum, p.OutSum) {
		reason := fmt.Sprintf("amount mismatch callback=%s expected=%s", outSum, p.OutSum)
		_ = s.payments.UpdateStatus(ctx, invID, domain.GatewayPaymentFailed, rawBody, reason)
		return "", ErrAmountMismatch
	}

	changed, err := s.payments.MarkPaidIdempotent(ctx, invID, rawBody, time.Now().UTC())
	if err != nil {
		return "", err
	}
	if !changed {
		s.loggerf("level=info msg=idempotent callback already paid inv_id=%d", invID)
	}

	amount, _ := strconv.ParseFloat(p.OutSum, 64)
	if _, err := s.bookings.CreatePaidBooking(ctx, p.SessionID, p.StudentID, p.StudentEmail, amount); err != nil {
		if errors.Is(err, booking.ErrAlreadyBooked) {
			// Replayed callback; the booking already exists.
			return "OK" + strconv.FormatInt(invID, 10), nil
		}
		s.loggerf("level=error msg=failed to create booking after payment inv_id=%d err=%v", invID, err)
		return "", err
	}

	return "OK" + strconv.FormatInt(invID, 10), nil
}

// HandleSuccessCallback verifies the customer's return redirect. It
// never creates a booking; only the result callback does.
func (s *Service) HandleSuccessCallback(ctx context.Context, outSum string, invID int64, signature string, shpParams map[string]string) (bool, error) {
	valid := strings.EqualFold(signature, s.generateSignatureForSuccess(outSum, invID, shpParams))
	s.loggerf("level=info msg=gateway success signature validation inv_id=%d signature_valid=%t", invID, valid)
	if !valid {
		return false, ErrInvalidSignature
	}

	p, err := s.payments.GetByInvID(ctx, invID)
	if err != nil {
		return false, err
	}
	if !amountEqual(outSum, p.OutSum) {
		s.loggerf("level=error msg=amount mismatch on success callback inv_id=%d callback_out_sum=%s expected_out_sum=%s", invID, outSum, p.OutSum)
		return false, ErrAmountMismatch
	}

	return true, nil
}

func (s *Service) generateSignatureForInit(outSum string, invID int64, shpParams map[string]string) string {
	parts := []string{s.cfg.MerchantLogin, outSum, strconv.FormatInt(invID, 10), s.cfg.Password1}
	parts = append(parts, flattenShpParams(shpParams)...)
	return md5Hex(strings.Join(parts, ":"))
}

func (s *Service) generateSignatureForResult(outSum string, invID int64, shpParams map[string]string) string {
	parts := []string{outSum, strconv.FormatInt(invID, 10), s.cfg.Password2}
	parts = append(parts, flattenShpParams(shpParams)...)
	return md5Hex(strings.Join(parts, ":"))
}

func (s *Service) generateSignatureForSuccess(outSum string, invID int64, shpParams map[string]string) string {
	parts := []string{outSum, strconv.FormatInt(invID, 10), s.cfg.Password1}
	parts = append(parts, flattenShpParams(shpParams)...)
	return md5Hex(strings.Join(parts, ":"))
}

func flattenShpParams(shp map[string]string) []string {
	keys := make([]string, 0, len(shp))
	for k := range shp {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, "Shp_"+k+"="+shp[k])
	}
	return out
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func amountEqual(a, b string) bool {
	ar, ok := new(big.Rat).SetString(strings.TrimSpace(a))
	if !ok {
		return false
	}
	br, ok := new(big.Rat).SetString(strings.TrimSpace(b))
	if !ok {
		return false
	}
	return ar.Cmp(br) == 0
}

func md5Hex(s string) string {
	h := md5.Sum([]byte(s))
	return strings.ToUpper(hex.EncodeToString(h[:]))
}
