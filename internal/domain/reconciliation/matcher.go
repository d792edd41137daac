package reconciliation

// MatchOptions режимы разбора дат для двух таблиц
type MatchOptions struct {
	RecordDateMode    DateMode
	CandidateDateMode DateMode
}

// matchState рабочее состояние одного прогона
// claimed и consumed индексируются позицией записи/кандидата, строки физически не удаляются
type matchState struct {
	records    []Record
	candidates []Candidate
	recordKeys []Key
	candKeys   []Key

	// groups кандидаты с одинаковым валидным ключом, в порядке исходной таблицы
	groups map[Key][]int
	// nameCounts количество кандидатов с данным нормализованным именем по всей таблице
	nameCounts map[string]int

	claimed  []bool
	consumed []bool
}

func newMatchState(records []Record, candidates []Candidate, opts MatchOptions) *matchState {
	s := &matchState{
		records:    records,
		candidates: candidates,
		recordKeys: make([]Key, len(records)),
		candKeys:   make([]Key, len(candidates)),
		groups:     make(map[Key][]int),
		nameCounts: make(map[string]int),
		claimed:    make([]bool, len(records)),
		consumed:   make([]bool, len(candidates)),
	}

	for i := range records {
		s.recordKeys[i] = KeyOf(records[i].Name, records[i].Date, opts.RecordDateMode)
	}
	for j := range candidates {
		key := KeyOf(candidates[j].Name, candidates[j].Date, opts.CandidateDateMode)
		s.candKeys[j] = key
		if key.Name != "" {
			s.nameCounts[key.Name]++
		}
		if key.Matchable() {
			s.groups[key] = append(s.groups[key], j)
		}
	}
	return s
}

// Match выполняет каскадное сопоставление:
//  1. EXACT: ключ (имя, дата) совпадает с группой из одного кандидата
//  2. MULTI_DATE: ключ совпадает с группой из нескольких кандидатов, по строке на каждого
//  3. NAME_ONLY: имя уникально во всей таблице bitrix, дата не учитывается
//  4. UNMATCHED: все остальные записи
//
// Уровни 1 и 2 считаются по полному набору записей, затем объединяются в множество занятых.
// Каждая запись manager попадает в результат; повторяется только при разветвлении MULTI_DATE
func Match(records []Record, candidates []Candidate, opts MatchOptions) ([]UnifiedRow, MatchStats) {
	s := newMatchState(records, candidates, opts)

	exact, exactClaims, exactUsed := s.joinByKey(func(size int) bool { return size == 1 }, TierExact)
	multi, multiClaims, multiUsed := s.joinByKey(func(size int) bool { return size > 1 }, TierMultiDate)

	// Дедупликация: запись занята, если сопоставлена любым из первых двух уровней
	multiRecords := 0
	for i := range s.claimed {
		s.claimed[i] = exactClaims[i] || multiClaims[i]
		if multiClaims[i] {
			multiRecords++
		}
	}
	for j := range s.consumed {
		s.consumed[j] = exactUsed[j] || multiUsed[j]
	}

	byName := s.joinByUniqueName()
	unmatched := s.unmatched()

	rows := make([]UnifiedRow, 0, len(exact)+len(multi)+len(byName)+len(unmatched))
	rows = append(rows, exact...)
	rows = append(rows, multi...)
	rows = append(rows, byName...)
	rows = append(rows, unmatched...)

	stats := s.stats(rows, len(exact), len(multi), len(byName), len(unmatched))
	stats.MultiDateRecords = multiRecords
	return rows, stats
}

// joinByKey соединяет все записи с кандидатами по ключу (имя, дата),
// оставляя только группы нужного размера
func (s *matchState) joinByKey(accept func(size int) bool, tier MatchTier) ([]UnifiedRow, []bool, []bool) {
	var rows []UnifiedRow
	claims := make([]bool, len(s.records))
	used := make([]bool, len(s.candidates))

	for i := range s.records {
		key := s.recordKeys[i]
		if !key.Matchable() {
			continue
		}
		group, ok := s.groups[key]
		if !ok || !accept(len(group)) {
			continue
		}
		for _, j := range group {
			rows = append(rows, s.row(i, j, tier))
			used[j] = true
		}
		claims[i] = true
	}
	return rows, claims, used
}

// joinByUniqueName сопоставляет свободные записи с кандидатами,
// чье имя встречается в bitrix ровно один раз и кто не занят предыдущими уровнями
func (s *matchState) joinByUniqueName() []UnifiedRow {
	unique := make(map[string]int)
	for j, key := range s.candKeys {
		if key.Name == "" || s.nameCounts[key.Name] != 1 || s.consumed[j] {
			continue
		}
		unique[key.Name] = j
	}

	var rows []UnifiedRow
	for i := range s.records {
		if s.claimed[i] {
			continue
		}
		name := s.recordKeys[i].Name
		if name == "" {
			continue
		}
		j, ok := unique[name]
		if !ok {
			continue
		}
		rows = append(rows, s.row(i, j, TierNameOnly))
		s.claimed[i] = true
		s.consumed[j] = true
	}
	return rows
}

func (s *matchState) unmatched() []UnifiedRow {
	var rows []UnifiedRow
	for i := range s.records {
		if s.claimed[i] {
			continue
		}
		rows = append(rows, UnifiedRow{Record: s.records[i], Tier: TierUnmatched})
	}
	return rows
}

func (s *matchState) row(i, j int, tier MatchTier) UnifiedRow {
	candidate := s.candidates[j]
	return UnifiedRow{
		Record:    s.records[i],
		Candidate: &candidate,
		Tier:      tier,
	}
}

func (s *matchState) stats(rows []UnifiedRow, exact, multi, byName, unmatched int) MatchStats {
	stats := MatchStats{
		Records:       len(s.records),
		Candidates:    len(s.candidates),
		OutputRows:    len(rows),
		Exact:         exact,
		MultiDateRows: multi,
		NameOnly:      byName,
		Unmatched:     unmatched,
	}

	for _, used := range s.consumed {
		if !used {
			stats.UnusedCandidates++
		}
	}
	for i := range s.records {
		if s.records[i].Date != nil && !s.recordKeys[i].Date.Valid {
			stats.InvalidRecordDates++
		}
	}
	for j := range s.candidates {
		if s.candidates[j].Date != nil && !s.candKeys[j].Date.Valid {
			stats.InvalidCandidateDates++
		}
	}
	return stats
}
