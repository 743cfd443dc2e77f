package flow

func (m Model) View() string {
	if m.overlay == overlayMentor {
		return m.viewMentor()
	}
	if m.overlay == overlayExperience {
		return m.viewExperience()
	}

	switch m.screen {
	case ScreenWelcome:
		return m.viewWelcome()
	case ScreenUpload, ScreenUploadSuccess:
		return m.viewUpload()
	case ScreenQuestions, ScreenQuizSuccess:
		return m.viewQuiz()
	case ScreenQuizLoading:
		return m.viewRamp()
	case ScreenResults:
		return m.viewResults()
	case ScreenDebate:
		return m.viewDebate()
	case ScreenLoader:
		return m.viewLoader()
	case ScreenRoleResult:
		return m.viewRoleResult()
	}
	return ""
}
