package registry

// widgets is the static widget table: the standard widget set with the
// properties the generator needs to classify. The table is intentionally not
// exhaustive per widget; unknown properties fall back to Object, which only
// costs a custom-property promotion in generated code.
var widgets = map[string]WidgetInfo{
	"Widget": {
		Name:   "Widget",
		Module: "kivy.uix.widget",
		Properties: map[string]PropertyKind{
			"x":             Numeric,
			"y":             Numeric,
			"width":         Numeric,
			"height":        Numeric,
			"pos":           ReferenceList,
			"size":          ReferenceList,
			"center":        ReferenceList,
			"center_x":      Numeric,
			"center_y":      Numeric,
			"right":         Numeric,
			"top":           Numeric,
			"pos_hint":      Dict,
			"size_hint":     ReferenceList,
			"size_hint_x":   Numeric,
			"size_hint_y":   Numeric,
			"size_hint_min": ReferenceList,
			"size_hint_max": ReferenceList,
			"opacity":       Numeric,
			"disabled":      Boolean,
		},
		Events: []string{"touch_down", "touch_move", "touch_up", "kv_post"},
	},
	"Label": {
		Name:   "Label",
		Module: "kivy.uix.label",
		Base:   "Widget",
		Properties: map[string]PropertyKind{
			"text":      String,
			"font_size": Numeric,
			"font_name": String,
			"bold":      Boolean,
			"italic":    Boolean,
			"halign":    Option,
			"valign":    Option,
			"color":     Color,
			"markup":    Boolean,
			"text_size": ReferenceList,
			"shorten":   Boolean,
			"padding":   VariableList,
		},
		Events: []string{"ref_press"},
	},
	"Button": {
		Name:   "Button",
		Module: "kivy.uix.button",
		Base:   "Label",
		Properties: map[string]PropertyKind{
			"background_color":  Color,
			"background_normal": String,
			"background_down":   String,
			"state":             Option,
		},
		Events: []string{"press", "release"},
	},
	"ToggleButton": {
		Name:   "ToggleButton",
		Module: "kivy.uix.togglebutton",
		Base:   "Button",
		Properties: map[string]PropertyKind{
			"group":              Object,
			"allow_no_selection": Boolean,
		},
	},
	"CheckBox": {
		Name:   "CheckBox",
		Module: "kivy.uix.checkbox",
		Base:   "Widget",
		Properties: map[string]PropertyKind{
			"active": Boolean,
			"group":  Object,
			"color":  Color,
		},
	},
	"Switch": {
		Name:   "Switch",
		Module: "kivy.uix.switch",
		Base:   "Widget",
		Properties: map[string]PropertyKind{
			"active": Boolean,
		},
	},
	"TextInput": {
		Name:   "TextInput",
		Module: "kivy.uix.textinput",
		Base:   "Widget",
		Properties: map[string]PropertyKind{
			"text":             String,
			"hint_text":        String,
			"multiline":        Boolean,
			"readonly":         Boolean,
			"password":         Boolean,
			"font_size":        Numeric,
			"cursor_color":     Color,
			"foreground_color": Color,
			"background_color": Color,
			"input_filter":     Object,
		},
		Events: []string{"text_validate", "double_tap", "triple_tap"},
	},
	"Image": {
		Name:   "Image",
		Module: "kivy.uix.image",
		Base:   "Widget",
		Properties: map[string]PropertyKind{
			"source":        String,
			"fit_mode":      Option,
			"color":         Color,
			"anim_delay":    Numeric,
			"keep_ratio":    Boolean,
			"allow_stretch": Boolean,
		},
	},
	"Slider": {
		Name:   "Slider",
		Module: "kivy.uix.slider",
		Base:   "Widget",
		Properties: map[string]PropertyKind{
			"min":         Numeric,
			"max":         Numeric,
			"value":       Numeric,
			"step":        Numeric,
			"orientation": Option,
		},
	},
	"ProgressBar": {
		Name:   "ProgressBar",
		Module: "kivy.uix.progressbar",
		Base:   "Widget",
		Properties: map[string]PropertyKind{
			"max":   Numeric,
			"value": Numeric,
		},
	},
	"Layout": {
		Name:       "Layout",
		Module:     "kivy.uix.layout",
		Base:       "Widget",
		Properties: map[string]PropertyKind{},
	},
	"BoxLayout": {
		Name:   "BoxLayout",
		Module: "kivy.uix.boxlayout",
		Base:   "Layout",
		Properties: map[string]PropertyKind{
			"orientation": Option,
			"spacing":     Numeric,
			"padding":     VariableList,
		},
	},
	"GridLayout": {
		Name:   "GridLayout",
		Module: "kivy.uix.gridlayout",
		Base:   "Layout",
		Properties: map[string]PropertyKind{
			"cols":    Numeric,
			"rows":    Numeric,
			"spacing": VariableList,
			"padding": VariableList,
		},
	},
	"FloatLayout": {
		Name:       "FloatLayout",
		Module:     "kivy.uix.floatlayout",
		Base:       "Layout",
		Properties: map[string]PropertyKind{},
	},
	"RelativeLayout": {
		Name:       "RelativeLayout",
		Module:     "kivy.uix.relativelayout",
		Base:       "FloatLayout",
		Properties: map[string]PropertyKind{},
	},
	"AnchorLayout": {
		Name:   "AnchorLayout",
		Module: "kivy.uix.anchorlayout",
		Base:   "Layout",
		Properties: map[string]PropertyKind{
			"anchor_x": Option,
			"anchor_y": Option,
			"padding":  VariableList,
		},
	},
	"StackLayout": {
		Name:   "StackLayout",
		Module: "kivy.uix.stacklayout",
		Base:   "Layout",
		Properties: map[string]PropertyKind{
			"orientation": Option,
			"spacing":     VariableList,
			"padding":     VariableList,
		},
	},
	"ScrollView": {
		Name:   "ScrollView",
		Module: "kivy.uix.scrollview",
		Base:   "Widget",
		Properties: map[string]PropertyKind{
			"scroll_x":    Numeric,
			"scroll_y":    Numeric,
			"do_scroll_x": Boolean,
			"do_scroll_y": Boolean,
			"bar_width":   Numeric,
		},
		Events: []string{"scroll_start", "scroll_move", "scroll_stop"},
	},
	"Spinner": {
		Name:   "Spinner",
		Module: "kivy.uix.spinner",
		Base:   "Button",
		Properties: map[string]PropertyKind{
			"values":          List,
			"text_autoupdate": Boolean,
			"is_open":         Boolean,
		},
	},
	"Popup": {
		Name:   "Popup",
		Module: "kivy.uix.popup",
		Base:   "FloatLayout",
		Properties: map[string]PropertyKind{
			"title":           String,
			"content":         Object,
			"auto_dismiss":    Boolean,
			"separator_color": Color,
		},
		Events: []string{"open", "dismiss"},
	},
	"Screen": {
		Name:   "Screen",
		Module: "kivy.uix.screenmanager",
		Base:   "RelativeLayout",
		Properties: map[string]PropertyKind{
			"name": String,
		},
		Events: []string{"pre_enter", "enter", "pre_leave", "leave"},
	},
	"ScreenManager": {
		Name:   "ScreenManager",
		Module: "kivy.uix.screenmanager",
		Base:   "FloatLayout",
		Properties: map[string]PropertyKind{
			"current":    String,
			"transition": Object,
		},
	},
}
