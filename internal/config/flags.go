package config

import (
	"fmt"
	"strconv"
	"strings"
)

// byteFlag is an optional value in [1, 255].
type byteFlag struct {
	v   uint8
	set bool
}

func (f *byteFlag) String() string {
	if f == nil || !f.set {
		return ""
	}
	return strconv.Itoa(int(f.v))
}

func (f *byteFlag) Set(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	if n < 1 || n > 255 {
		return fmt.Errorf("must be in [1, 255], got %d", n)
	}
	f.v, f.set = uint8(n), true
	return nil
}

// listFlag is a comma separated list of non-negative integers.
type listFlag []int

func (f *listFlag) String() string {
	if f == nil {
		return ""
	}
	parts := make([]string, len(*f))
	for i, v := range *f {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (f *listFlag) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fmt.Errorf("%q is not a number", part)
		}
		if n < 0 {
			return fmt.Errorf("monitor index must not be negative, got %d", n)
		}
		*f = append(*f, n)
	}
	return nil
}

// pointFlag is a signed "x,y" pair.
type pointFlag struct {
	x, y int
	set  bool
}

func (f *pointFlag) String() string {
	if f == nil || !f.set {
		return ""
	}
	return fmt.Sprintf("%d,%d", f.x, f.y)
}

func (f *pointFlag) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return fmt.Errorf("want \"x,y\", got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return fmt.Errorf("%q is not a number", parts[0])
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return fmt.Errorf("%q is not a number", parts[1])
	}
	f.x, f.y, f.set = x, y, true
	return nil
}
