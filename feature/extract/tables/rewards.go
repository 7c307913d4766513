package tables

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"nms-extractor/core/mxml"
)

// rewardStatMarkers select which flattened leaves count as stat-like
// scalars.
var rewardStatMarkers = []string{
	"amount", "value", "chance", "duration", "time", "bonus", "mult", "min", "max",
}

// rewardStatLabels renames the most common internal reward keys to readable
// labels.
var rewardStatLabels = map[string]string{
	"GcRewardEnergy.Amount":         "LifeSupportRechargeAmount",
	"GcRewardRefreshHazProt.Amount": "HazardProtectionRechargeAmount",
	"GcRewardStamina.Amount":        "StaminaRechargeAmount",
	"GcRewardHealth.Amount":         "HealthRechargeAmount",
}

// RewardEffects returns the extracted stat map for a reward id, or nil when
// the reward table is absent or carries no scalar stats for it. The table
// is indexed lazily on first use.
func (c *Context) RewardEffects(rewardID string) map[string]any {
	if !c.rewardsReady {
		c.buildRewardLookup()
	}
	if rewardID == "" {
		return nil
	}
	return c.rewards[rewardID]
}

func (c *Context) buildRewardLookup() {
	c.rewardsReady = true
	c.rewards = make(map[string]map[string]any)

	var root *mxml.Node
	for _, path := range c.rewardTablePaths() {
		loaded, err := c.Cache.Load(path)
		if err != nil {
			c.Log.Warn("reward table unreadable", zap.String("path", path), zap.Error(err))
			continue
		}
		root = loaded
		break
	}
	if root == nil {
		return
	}

	for _, tableName := range []string{"GenericTable", "DestructionTable", "Table"} {
		table := root.Find(tableName)
		if table == nil {
			continue
		}
		for _, entry := range table.Children {
			id := entry.Prop("Id", "")
			if id == "" {
				id = entry.Prop("ID", "")
			}
			if id == "" {
				continue
			}
			if stats := rewardEffectStats(entry); len(stats) > 0 {
				c.rewards[id] = stats
			}
		}
	}

	c.Log.Debug("reward effect lookup built", zap.Int("rewards", len(c.rewards)))
}

// rewardTablePaths probes the known reward table names, then falls back to
// scanning the table directory for any reward-table-like document so a table
// rename does not lose the effect stats.
func (c *Context) rewardTablePaths() []string {
	for _, name := range rewardTableFiles {
		path := c.Path(name)
		if _, err := os.Stat(path); err == nil {
			return []string{path}
		}
	}

	var hits []string
	_ = filepath.WalkDir(c.TableDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		name := strings.ToLower(d.Name())
		if strings.HasSuffix(name, ".mxml") && strings.Contains(name, "reward") && strings.Contains(name, "table") {
			hits = append(hits, path)
		}
		return nil
	})
	sort.Strings(hits)
	return hits
}

// rewardEffectStats flattens a reward entry's property tree and keeps
// numeric and boolean leaves whose path looks stat-like, under concise
// unique keys.
func rewardEffectStats(entry *mxml.Node) map[string]any {
	stats := make(map[string]any)
	used := make(map[string]bool)

	var walk func(n *mxml.Node, prefix string)
	walk = func(n *mxml.Node, prefix string) {
		path := prefix
		if n.Name != "" {
			if prefix != "" {
				path = prefix + "." + n.Name
			} else {
				path = n.Name
			}
		}
		if len(n.Children) > 0 {
			for _, child := range n.Children {
				walk(child, path)
			}
			return
		}
		if n.Name == "" || !statLikePath(path) {
			return
		}
		parsed := mxml.Coerce(n.Value)
		switch parsed.(type) {
		case int, float64, bool:
		default:
			return
		}
		key := shortStatKey(path)
		if used[key] {
			for i := 2; ; i++ {
				candidate := key + "_" + strconv.Itoa(i)
				if !used[candidate] {
					key = candidate
					break
				}
			}
		}
		used[key] = true
		stats[key] = parsed
	}
	walk(entry, "")

	return stats
}

func statLikePath(path string) bool {
	lower := strings.ToLower(path)
	for _, marker := range rewardStatMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// shortStatKey prefers the portion after the reward wrapper over the full
// nested path, then applies the readable-label renames.
func shortStatKey(path string) string {
	key := path
	if _, after, ok := strings.Cut(path, ".Reward."); ok {
		key = after
	} else if i := strings.LastIndex(path, "."); i >= 0 {
		key = path[i+1:]
	}
	if label, ok := rewardStatLabels[key]; ok {
		return label
	}
	return key
}
