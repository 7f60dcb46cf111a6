package events

import (
	"encoding/json"
)

//Fact is one telemetry payload: the raw client body after JSON parsing and
//the stored record are both open key-value objects
type Fact map[string]interface{}

func (f Fact) Serialize() ([]byte, error) {
	return json.Marshal(f)
}

//Server-assigned StoredEvent fields. They always win over client-supplied
//values of the same name.
const (
	IPKey      = "ip"
	CountryKey = "country"
	UAKey      = "ua"
)

//ComposeStored merges a sanitized fact with server-observed fields into the
//record to persist. The raw client body must never reach this function:
//only the closed projection produced by Sanitize does.
func ComposeStored(sanitized Fact, isoTimestamp, ip, country, ua string) Fact {
	stored := Fact{}
	for k, v := range sanitized {
		stored[k] = v
	}

	stored[TimestampKey] = isoTimestamp
	stored[IPKey] = ip
	stored[CountryKey] = country
	stored[UAKey] = ua

	return stored
}
