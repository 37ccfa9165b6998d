// Package attribution maps raw campaign parameters onto the channel
// taxonomy used for reporting.
package attribution

import "strings"

// Channel is a reporting bucket for campaign attribution.
type Channel string

// Reporting buckets.
const (
	ChannelGoogle  Channel = "google"
	ChannelMeta    Channel = "meta"
	ChannelOrganic Channel = "organic"
	ChannelOther   Channel = "other"
)

// Normalize folds a raw utm_source value into the stored channel label.
// Matching is substring based so variants like "google-ads" or "fb_campaign"
// land in the right bucket. Unrecognised sources keep their lowercased value
// so custom campaigns remain distinguishable. Applied once at intake; the
// raw value is not retained.
func Normalize(raw string) string {
	src := strings.ToLower(strings.TrimSpace(raw))
	if src == "" {
		return string(ChannelOrganic)
	}
	if strings.Contains(src, "google") || strings.Contains(src, "gclid") {
		return string(ChannelGoogle)
	}
	if strings.Contains(src, "facebook") || strings.Contains(src, "meta") || strings.Contains(src, "fb") {
		return string(ChannelMeta)
	}
	return src
}

// Bucket classifies an already-stored source label for aggregation. It must
// accept any string, including labels written before a normalization rule
// change; anything outside the fixed taxonomy counts as other.
func Bucket(stored string) Channel {
	switch strings.ToLower(strings.TrimSpace(stored)) {
	case "", string(ChannelOrganic):
		return ChannelOrganic
	case string(ChannelGoogle):
		return ChannelGoogle
	case string(ChannelMeta):
		return ChannelMeta
	default:
		return ChannelOther
	}
}
