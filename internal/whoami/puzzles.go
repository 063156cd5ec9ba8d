package whoami

// puzzles for multiplayer who-am-i rounds. Clues go from vague to obvious.
var puzzles = []Puzzle{
	{
		Clues: []string{
			"I have won the Champions League with two different clubs.",
			"I have won multiple Ballon d'Or awards.",
			"I played for Barcelona for over 15 years.",
			"I am from Argentina.",
		},
		CorrectAnswer: "Lionel Messi",
	},
	{
		Clues: []string{
			"I have won league titles in England, Spain and Italy.",
			"I am one of the top scorers in Champions League history.",
			"I wear the number 7.",
			"I am from Portugal.",
		},
		CorrectAnswer: "Cristiano Ronaldo",
	},
	{
		Clues: []string{
			"I play in the Premier League.",
			"I have won the Golden Boot multiple times.",
			"I am known for my speed and left foot.",
			"I am from Egypt and play for Liverpool.",
		},
		CorrectAnswer: "Mohamed Salah",
	},
	{
		Clues: []string{
			"I am a Belgian midfielder.",
			"I play for Manchester City.",
			"I am known for my passing and assists.",
			"I previously played for Chelsea and Wolfsburg.",
		},
		CorrectAnswer: "Kevin De Bruyne",
	},
	{
		Clues: []string{
			"I am a Norwegian striker.",
			"I broke the Premier League single-season goals record.",
			"I joined Manchester City from Borussia Dortmund.",
			"I am known for my physical presence and finishing.",
		},
		CorrectAnswer: "Erling Haaland",
	},
}
