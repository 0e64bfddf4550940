package model

// AvailabilityValue 出欠取值
type AvailabilityValue int

const (
	AvailabilityAbsent    AvailabilityValue = 0 // 欠席（默认值）
	AvailabilityUndecided AvailabilityValue = 1 // 未定
	AvailabilityAttending AvailabilityValue = 2 // 出席
)

var availabilityLabels = [...]string{"欠", "？", "出"}

// Valid 是否为三种合法取值之一
func (v AvailabilityValue) Valid() bool {
	return v >= AvailabilityAbsent && v <= AvailabilityAttending
}

// Label 出欠表中展示的单字标签
func (v AvailabilityValue) Label() string {
	if !v.Valid() {
		return ""
	}
	return availabilityLabels[v]
}
