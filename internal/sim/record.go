package sim

import "github.com/vovakirdan/arena/internal/storage"

// Record converts the session's totals into a storage row. The row has no
// ID until the store saves it.
func Record(s *Session, levelName, mode, player string, seed int64) storage.Run {
	st := s.Stats()
	return storage.Run{
		Level:       levelName,
		Mode:        mode,
		Player:      player,
		Seed:        seed,
		SimSeconds:  s.Time(),
		Score:       st.Score(),
		Kills:       st.Kills,
		Deaths:      st.Deaths,
		Falls:       st.Falls,
		ShotsFired:  st.ShotsFired,
		Hits:        st.Hits,
		Waves:       st.Waves,
		DamageDealt: st.DamageDealt,
		DamageTaken: st.DamageTaken,
	}
}
