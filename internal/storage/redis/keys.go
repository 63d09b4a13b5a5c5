package redis

import "fmt"

// Key prefix for all application data
const keyPrefix = "visited"

// authKey returns the Redis key holding a user's password hash
func authKey(username string) string {
	return fmt.Sprintf("%s:auth:%s", keyPrefix, username)
}

// dataKey returns the Redis key holding a user's lifecycle metadata
func dataKey(username string) string {
	return fmt.Sprintf("%s:data:%s", keyPrefix, username)
}
