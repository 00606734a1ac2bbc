package services

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Free-text input contracts for the WAITING_* states. Rejections are
// handled by re-prompting; they are user mistakes, not errors.

const (
	minQuantity = 1
	maxQuantity = 99

	minNameLen = 2
	maxNameLen = 100

	minAddressLen = 10
	maxAddressLen = 500
)

// ParseQuantity accepts an integer between 1 and 99 inclusive.
func ParseQuantity(raw string) (int, bool) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || qty < minQuantity || qty > maxQuantity {
		return 0, false
	}
	return qty, true
}

// ParseName accepts a trimmed name of 2-100 characters.
func ParseName(raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	n := utf8.RuneCountInString(name)
	if n < minNameLen || n > maxNameLen {
		return "", false
	}
	return name, true
}

var phonePattern = regexp.MustCompile(`^(0|84|\+84)?([3-9]\d{8})$`)

// NormalizePhone validates a Vietnamese mobile number and canonicalizes any
// 84/+84 country prefix to a leading 0.
func NormalizePhone(raw string) (string, bool) {
	m := phonePattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", false
	}
	return "0" + m[2], true
}

// ParseAddress accepts a trimmed address of 10-500 characters.
func ParseAddress(raw string) (string, bool) {
	address := strings.TrimSpace(raw)
	n := utf8.RuneCountInString(address)
	if n < minAddressLen || n > maxAddressLen {
		return "", false
	}
	return address, true
}

var (
	affirmativeWords = map[string]bool{
		"có": true, "co": true, "yes": true, "y": true, "ok": true,
		"oke": true, "okay": true, "đồng ý": true, "dong y": true,
		"xác nhận": true, "xac nhan": true, "chốt": true, "chot": true,
		"đúng": true, "dung": true, "ừ": true, "uh": true,
	}
	negativeWords = map[string]bool{
		"không": true, "khong": true, "ko": true, "no": true,
		"hủy": true, "huy": true, "thôi": true, "thoi": true,
		"cancel": true,
	}
)

// MatchConfirmWord classifies a free-text confirmation answer.
// confirmed is only meaningful when matched is true.
func MatchConfirmWord(raw string) (confirmed, matched bool) {
	word := strings.ToLower(strings.TrimSpace(raw))
	if affirmativeWords[word] {
		return true, true
	}
	if negativeWords[word] {
		return false, true
	}
	return false, false
}
