package tui

// Key bindings.
const (
	keyQuit      = "q"
	keyCtrlC     = "ctrl+c"
	keyEnter     = "enter"
	keyEsc       = "esc"
	keySlash     = "/"
	keyField     = "f"
	keyClear     = "c"
	keySort      = "s"
	keyReverse   = "r"
	keyRefresh   = "R"
	keyNext      = "n"
	keyPrev      = "p"
	keyRight     = "right"
	keyLeft      = "left"
	keyGrow      = "+"
	keyShrink    = "-"
	keyCharacter = "1"
	keyLocation  = "2"
	keyEpisode   = "3"
)
