package metrics

var Enabled = false

func Init(enabled bool) {
	Enabled = enabled
	if Enabled {
		initEvents()
	}
}
