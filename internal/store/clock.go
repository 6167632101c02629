package store

import "time"

func nowUnixMillis() uint64 {
	return uint64(time.Now().UnixMilli())
}
