package attendance

type Recorder interface {
	CheckedIn(churchID string)
	CheckInRejected(reason string)
	CheckInCancelled(churchID string)
}

type noopRecorder struct{}

func (noopRecorder) CheckedIn(string) {}

func (noopRecorder) CheckInRejected(string) {}

func (noopRecorder) CheckInCancelled(string) {}
