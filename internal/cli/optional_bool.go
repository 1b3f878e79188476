package cli

import "strconv"

// optionalBool is a boolean flag that remembers whether it was set.
type optionalBool struct {
	value *bool
}

func (b *optionalBool) String() string {
	if b == nil || b.value == nil {
		return ""
	}
	return strconv.FormatBool(*b.value)
}

func (b *optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	b.value = &v
	return nil
}

// IsBoolFlag lets "-flag" stand for "-flag=true".
func (b *optionalBool) IsBoolFlag() bool { return true }
