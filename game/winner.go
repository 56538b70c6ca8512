package game

// Winner reports the winning side, if any. A side wins when the opposing
// master is gone or when its own master stands on the opposing temple.
func (gs GameState) Winner() (Player, bool) {
	blueMaster, redMaster := false, false
	for _, row := range gs.Board {
		for _, p := range row {
			switch p {
			case BlueMaster:
				blueMaster = true
			case RedMaster:
				redMaster = true
			}
		}
	}
	if !blueMaster {
		return Red, true
	}
	if !redMaster {
		return Blue, true
	}

	if gs.Board.At(Red.Temple()) == BlueMaster {
		return Blue, true
	}
	if gs.Board.At(Blue.Temple()) == RedMaster {
		return Red, true
	}
	return 0, false
}

func (gs GameState) IsTerminal() bool {
	_, over := gs.Winner()
	return over
}
