package redis

import "fmt"

const (
	// KeyPrefixResume is the prefix for resume document keys
	KeyPrefixResume = "vitae:resume:"
	// KeyResumeIndex is the sorted set of resume IDs scored by modification time (unix ms)
	KeyResumeIndex = "vitae:resumes"
)

// ResumeKey returns the Redis key for a resume document by ID
func ResumeKey(id string) string {
	return KeyPrefixResume + id
}

// IndexKey returns the key of the modification-time index
func IndexKey() string {
	return KeyResumeIndex
}

// ExtractResumeID extracts the resume ID from a Redis key
func ExtractResumeID(key string) (string, error) {
	if len(key) <= len(KeyPrefixResume) || key[:len(KeyPrefixResume)] != KeyPrefixResume {
		return "", fmt.Errorf("invalid resume key: %s", key)
	}
	return key[len(KeyPrefixResume):], nil
}
