package timestamp

import "time"

//wire format of the server-assigned event timestamp
const Layout = "2006-01-02T15:04:05.000Z"
const LogsLayout = "2006/01/02 15:04:05"

var frozenTime time.Time

//FreezeTime pins Now() for tests
func FreezeTime(t time.Time) {
	frozenTime = t
}

func UnfreezeTime() {
	frozenTime = time.Time{}
}

func Now() time.Time {
	if !frozenTime.IsZero() {
		return frozenTime
	}

	return time.Now().UTC()
}

func ToISOFormat(t time.Time) string {
	return t.UTC().Format(Layout)
}
