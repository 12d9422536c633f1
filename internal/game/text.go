package game

import "fmt"

// Title is the display name of the game.
const Title = "Smarterfiring"

// IntroPage is one screen of the how-to-play pager.
type IntroPage struct {
	Icon string
	Text string
}

// IntroPages are shown before the first session. Confirming the last
// page starts the game.
var IntroPages = []IntroPage{
	{Icon: "[#]", Text: "Welcome to Smarterfiring!"},
	{Icon: "<+>", Text: "Move your character with the arrow keys"},
	{Icon: "~~>", Text: "Press space to shoot flames"},
	{Icon: "\\*/", Text: "Hit dragons coming from the opposite direction"},
	{Icon: " * ", Text: "Score points for each dragon you hit"},
	{Icon: "(!)", Text: "You have 2 minutes to score as much as possible!"},
}

// ShareMessage is the text offered by the share action after game over.
func ShareMessage(score int) string {
	return fmt.Sprintf("I scored %d points in %s! Can you beat my score?", score, Title)
}

// InfoSection is a titled block of the about screen.
type InfoSection struct {
	Title string
	Lines []string
}

// Info describes the game, its rules and some tips.
var Info = []InfoSection{
	{
		Title: "About",
		Lines: []string{
			"Smarterfiring is a fast-paced action game where you control a tiny",
			"character and shoot fire at incoming dragons.",
		},
	},
	{
		Title: "Rules",
		Lines: []string{
			"Only dragons coming from the opposite direction can be hit",
			"Each hit dragon gives you 10 points",
			"Every shot summons a new dragon on the edge of the board",
			"The game ends when the two minute clock runs out",
		},
	},
	{
		Title: "Tips",
		Lines: []string{
			"Watch the dragons' directions carefully",
			"Time your shots to hit multiple dragons",
		},
	},
}
