package store

import (
	"testing"
	"time"

	"github.com/AngelCh415/adpulse/internal/models"
)

func TestMemoryStoreReplace(t *testing.T) {
	t0 := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	st := NewMemoryStore(models.Snapshot{
		CampaignMetrics: models.CampaignMetrics{Revenue: 100},
	}, t0)

	if st.Seq() != 0 {
		t.Fatalf("expected seq=0, got=%d", st.Seq())
	}
	if got := st.Current().CampaignMetrics.Revenue; got != 100 {
		t.Fatalf("expected revenue=100, got=%v", got)
	}

	t1 := t0.Add(5 * time.Second)
	seq := st.Replace(models.Snapshot{CampaignMetrics: models.CampaignMetrics{Revenue: 150}}, t1)
	if seq != 1 || st.Seq() != 1 {
		t.Fatalf("expected seq=1, got=%d/%d", seq, st.Seq())
	}
	if got := st.Current().CampaignMetrics.Revenue; got != 150 {
		t.Fatalf("expected revenue=150, got=%v", got)
	}
	if !st.UpdatedAt().Equal(t1) {
		t.Fatalf("expected updatedAt=%v, got=%v", t1, st.UpdatedAt())
	}
}
