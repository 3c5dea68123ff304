package match

import "github.com/poiesic/glassmatch/core"

// ResolveMonitor provides hooks to observe the resolve process.
// Implement this interface to track intermediate steps and results.
type ResolveMonitor interface {
	Start(query string)
	AfterCorpusLoad(corpus *core.Corpus)
	AfterScan(candidates []core.Candidate)
	AfterAggregate(best map[core.ID]core.GroupMatch)
	AfterRank(groupIds []core.ID)
	Finish(response *core.SearchResponse)
}

// noopMonitor is a no-op implementation of ResolveMonitor
type noopMonitor struct{}

var _ ResolveMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                             {}
func (n *noopMonitor) AfterCorpusLoad(_ *core.Corpus)             {}
func (n *noopMonitor) AfterScan(_ []core.Candidate)               {}
func (n *noopMonitor) AfterAggregate(_ map[core.ID]core.GroupMatch) {}
func (n *noopMonitor) AfterRank(_ []core.ID)                      {}
func (n *noopMonitor) Finish(_ *core.SearchResponse)              {}
