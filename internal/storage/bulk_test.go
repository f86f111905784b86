package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashank8104/resume-intelligence/internal/synth"
	"github.com/shashank8104/resume-intelligence/internal/types"
)

func TestBulkSaveDataset_SavesEverything(t *testing.T) {
	gen := synth.New(synth.Config{Seed: 7, Now: fixedClock(storeEpoch)})
	ds := gen.Dataset(5, 3)
	store := newTestStore(t, stepClock(storeEpoch, time.Second))

	result, err := store.BulkSaveDataset(ds)
	require.NoError(t, err)
	require.Len(t, result.ResumeIDs, 5)
	require.Len(t, result.JobIDs, 3)

	seen := make(map[string]bool)
	for _, id := range append(append([]string{}, result.ResumeIDs...), result.JobIDs...) {
		assert.Len(t, id, 12)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}

	assert.Len(t, store.ListResumes("", 0), 5)
	assert.Len(t, store.ListJobs("", 0), 3)

	stats := store.Stats()
	assert.Equal(t, 5, stats.TotalResumes)
	assert.Equal(t, 3, stats.TotalJobDescriptions)
}

func TestBulkSaveDataset_IDsFollowInputOrder(t *testing.T) {
	gen := synth.New(synth.Config{Seed: 11, Now: fixedClock(storeEpoch)})
	ds := gen.Dataset(4, 2)
	store := newTestStore(t, stepClock(storeEpoch, time.Second))

	result, err := store.BulkSaveDataset(ds)
	require.NoError(t, err)

	for i, id := range result.ResumeIDs {
		record, err := store.LoadResume(id)
		require.NoError(t, err)
		assert.Equal(t, ds.Resumes[i].Role, record.Role)
		assert.Equal(t, string(ds.Resumes[i].Level), record.ExperienceLevel)
	}
	for i, id := range result.JobIDs {
		record, err := store.LoadJob(id)
		require.NoError(t, err)
		assert.Equal(t, ds.Jobs[i].Role, record.Role)
	}
}

func TestBulkSaveDataset_AnonymizesResumes(t *testing.T) {
	gen := synth.New(synth.Config{Seed: 3, Now: fixedClock(storeEpoch)})
	ds := gen.Dataset(2, 0)
	store := newTestStore(t, stepClock(storeEpoch, time.Second))

	result, err := store.BulkSaveDataset(ds)
	require.NoError(t, err)

	for _, id := range result.ResumeIDs {
		record, err := store.LoadResume(id)
		require.NoError(t, err)
		contact := record.Resume.ContactInfo
		assert.Contains(t, contact.FullName, "***")
		assert.Equal(t, "+1-XXX-XXX-XXXX", contact.Phone)
		assert.Equal(t, "https://linkedin.com/in/anonymous", contact.LinkedIn)
		assert.Equal(t, "https://github.com/anonymous", contact.GitHub)
	}
}

func TestBulkSaveDataset_NilDataset(t *testing.T) {
	store := newTestStore(t, fixedClock(storeEpoch))

	_, err := store.BulkSaveDataset(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset is nil")
}

func TestSkillFrequency_RanksAcrossResumes(t *testing.T) {
	store := newTestStore(t, stepClock(storeEpoch, time.Second))

	first := &types.Resume{
		ContactInfo: types.ContactInfo{FullName: "A B", Email: "a@b.com", Location: "Remote"},
		Skills:      map[string][]string{"languages": {"Go", "Python"}},
	}
	second := &types.Resume{
		ContactInfo: types.ContactInfo{FullName: "C D", Email: "c@d.com", Location: "Remote"},
		Skills:      map[string][]string{"languages": {"go", "SQL"}},
	}
	_, err := store.SaveResume(first, Tags{}, false)
	require.NoError(t, err)
	_, err = store.SaveResume(second, Tags{}, false)
	require.NoError(t, err)

	ranking, err := store.SkillFrequency(0)
	require.NoError(t, err)
	// Case folds, then most frequent first with alphabetical ties.
	assert.Equal(t, []SkillCount{
		{Skill: "go", Count: 2},
		{Skill: "python", Count: 1},
		{Skill: "sql", Count: 1},
	}, ranking)

	top, err := store.SkillFrequency(1)
	require.NoError(t, err)
	assert.Equal(t, []SkillCount{{Skill: "go", Count: 2}}, top)
}

func TestSkillFrequency_EmptyStore(t *testing.T) {
	store := newTestStore(t, fixedClock(storeEpoch))

	ranking, err := store.SkillFrequency(0)
	require.NoError(t, err)
	assert.Empty(t, ranking)
}
