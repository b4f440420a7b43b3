package clock

import "time"

// Clock 当前时间来源，所有“是否已到发布时间”的判断都经由它
type Clock interface {
	Now() time.Time
}

// System 系统时钟，返回 UTC 时间
type System struct{}

// Now 实现 Clock
func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed 固定时钟
type Fixed time.Time

// Now 实现 Clock
func (f Fixed) Now() time.Time {
	return time.Time(f)
}

// Func 函数时钟
type Func func() time.Time

// Now 实现 Clock
func (f Func) Now() time.Time {
	return f()
}

// OrSystem 为 nil 时回退到系统时钟
func OrSystem(c Clock) Clock {
	if c == nil {
		return System{}
	}
	return c
}
