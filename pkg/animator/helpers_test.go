package animator

// recordSink 记录每次推送的帧
type recordSink struct {
	frames []string
}

func (s *recordSink) Display(frame string) {
	s.frames = append(s.frames, frame)
}

// fakeScenes 记录场景切换请求
type fakeScenes struct {
	valid    map[int]bool
	requests []int
}

func newFakeScenes(ids ...int) *fakeScenes {
	s := &fakeScenes{valid: make(map[int]bool)}
	for _, id := range ids {
		s.valid[id] = true
	}
	return s
}

func (s *fakeScenes) HasScene(id int) bool { return s.valid[id] }

func (s *fakeScenes) RequestTransition(id int) {
	s.requests = append(s.requests, id)
}

// fakeAudio 记录音效播放
type fakeAudio struct {
	played []string
}

func (a *fakeAudio) PlaySound(id string) bool {
	a.played = append(a.played, id)
	return true
}

// recordDiagnostics 记录诊断信息
type recordDiagnostics struct {
	messages []string
	contexts []string
}

func (d *recordDiagnostics) LogError(message, context string) {
	d.messages = append(d.messages, message)
	d.contexts = append(d.contexts, context)
}

func frames(names ...string) []string {
	return names
}
