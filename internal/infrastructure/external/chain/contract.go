package chain

import "strings"

// AllowListedContract is the one BEP-20 contract this service will ever
// credit. Every adapter and the manual recovery path check against it;
// transfers of any other token are dropped.
const AllowListedContract = "0x4b87f578d6fabf381f43bd2197fbb2a877da6ef8"

// TokenDecimals is the declared decimal count of the allow-listed token.
// The RPC adapter scales raw log amounts by this fixed exponent.
const TokenDecimals = 18

// deniedAddresses are permanently blocked, as contract or as sender, even
// when they otherwise look valid.
var deniedAddresses = map[string]bool{
	"0x0000000000000000000000000000000000000000": true,
	"0x000000000000000000000000000000000000dead": true,
}

// IsAllowedContract reports whether addr is the allow-listed token
// contract. Comparison is case-insensitive and deny-list aware.
func IsAllowedContract(addr string) bool {
	normalized := strings.ToLower(strings.TrimSpace(addr))
	if deniedAddresses[normalized] {
		return false
	}
	return normalized == AllowListedContract
}

// IsDeniedAddress reports whether addr is on the permanent deny-list.
func IsDeniedAddress(addr string) bool {
	return deniedAddresses[strings.ToLower(strings.TrimSpace(addr))]
}
