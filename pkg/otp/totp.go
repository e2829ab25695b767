package otp

import "time"

// DefaultPeriod is the standard RFC 6238 code validity window.
const DefaultPeriod = 30 * time.Second

// timeNow is swapped in tests for deterministic counters.
var timeNow = time.Now

// VerifyTOTP verifies a time-based code against the single counter for the
// current interval, with no drift tolerance.
func VerifyTOTP(key []byte, interval time.Duration, digits int, otp string) (bool, error) {
	counter := uint64(timeNow().Unix() / int64(interval/time.Second))
	return VerifyHOTP(key, counter, digits, otp)
}

// VerifyTOTPWithGracePeriod verifies a time-based code against every
// counter whose window overlaps [now-grace, now+grace] inclusive, returning
// true on the first match. Widening acceptance compensates for client clock
// drift without weakening the per-attempt rate limit.
func VerifyTOTPWithGracePeriod(key []byte, interval time.Duration, digits int, otp string, grace time.Duration) (bool, error) {
	if grace < 0 {
		return false, ErrInvalidGracePeriod
	}

	now := timeNow().Unix()
	step := int64(interval / time.Second)
	counter := (now - int64(grace/time.Second)) / step
	maxCounterInclusive := (now + int64(grace/time.Second)) / step

	for ; counter <= maxCounterInclusive; counter++ {
		ok, err := VerifyHOTP(key, uint64(counter), digits, otp)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
