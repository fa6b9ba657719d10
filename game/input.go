package game

// Input 客户端当前按住的全部按键（完整状态，不是增量）
type Input struct {
	Left    bool `json:"left"`
	Right   bool `json:"right"`
	Jump    bool `json:"jump"`
	Jetpack bool `json:"jetpack"`
	Fire    bool `json:"fire"`
	Reload  bool `json:"reload"`
	Weapon  bool `json:"weapon"` // 切换武器，按下沿触发
}
