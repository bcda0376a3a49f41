package metadomain

import "strings"

const accountPrefix = "act_"

type AdAccount struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AccountPath returns the graph node of an ads account, adding the act_ prefix
// when the id is bare.
func AccountPath(accountID string) string {
	if strings.HasPrefix(accountID, accountPrefix) {
		return accountID
	}
	return accountPrefix + accountID
}
