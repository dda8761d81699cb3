package routing

import "chat-keeper/internal/storage"

// Policy decides whether a conversation's messages are archived. It is built
// once from configuration and stays immutable, so it is safe to share across
// goroutines; Allow is a pure function of its inputs.
type Policy struct {
	enableGroup   bool
	enablePrivate bool
	whitelist     map[string]struct{}
	blacklist     map[string]struct{}
}

func New(enableGroup, enablePrivate bool, groupWhitelist, groupBlacklist []string) *Policy {
	return &Policy{
		enableGroup:   enableGroup,
		enablePrivate: enablePrivate,
		whitelist:     toSet(groupWhitelist),
		blacklist:     toSet(groupBlacklist),
	}
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

// Allow reports whether messages of the conversation should be recorded.
// For groups a non-empty whitelist is checked first: a group absent from it is
// denied before the blacklist is even consulted. The blacklist then removes
// individual groups the whitelist (or its absence) let through.
func (p *Policy) Allow(kind storage.Kind, chatID string) bool {
	switch kind {
	case storage.KindPrivate:
		return p.enablePrivate
	case storage.KindGroup:
		if !p.enableGroup {
			return false
		}
		if len(p.whitelist) > 0 {
			if _, ok := p.whitelist[chatID]; !ok {
				return false
			}
		}
		if _, ok := p.blacklist[chatID]; ok {
			return false
		}
		return true
	default:
		return false
	}
}
