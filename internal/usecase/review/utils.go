package review

import "time"

func nowUTCString() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func derefString(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}

// displayName resolves the seller display name shown in review queues:
// store name, falling back to the product's own name, then "Unknown".
func displayName(storeName, productName string) string {
	if storeName != "" {
		return storeName
	}
	if productName != "" {
		return productName
	}
	return "Unknown"
}
