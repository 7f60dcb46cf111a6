package uuid

import (
	"math/rand"
	"strconv"
	"time"

	googleuuid "github.com/google/uuid"
)

var mock bool

func InitMock() {
	mock = true
}

func ResetMock() {
	mock = false
}

//New returns a collision-resistant identifier. If system entropy is
//unavailable the result degrades to a pseudo-random string concatenated
//with the current unix millis: best-effort uniqueness only.
func New() string {
	if mock {
		return "mockeduuid"
	}

	id, err := googleuuid.NewRandom()
	if err != nil {
		return strconv.FormatUint(rand.Uint64(), 36) + strconv.FormatInt(time.Now().UnixMilli(), 10)
	}

	return id.String()
}
