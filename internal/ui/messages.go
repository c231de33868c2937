package ui

import "searchselect/internal/domain"

// selectionRequestedMsg carries a commit of the controlled select box to
// its owner, the Model
type selectionRequestedMsg struct {
	candidate domain.Candidate
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
