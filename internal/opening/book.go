package opening

// BookEntry is one opening line. Entries are matched move-for-move
// against a game's SAN prefix; an entry is eligible only when all of
// its moves are a prefix of the game.
type BookEntry struct {
	ECO       string
	Name      string
	Variation string
	Moves     []string
}

// Book is the built-in opening book, in declaration order. Longest
// eligible entry wins; ties go to the earlier declaration.
var Book = []BookEntry{
	{ECO: "B00", Name: "King's Pawn Game", Moves: []string{"e4"}},
	{ECO: "C20", Name: "King's Pawn Game", Moves: []string{"e4", "e5"}},
	{ECO: "C40", Name: "King's Knight Opening", Moves: []string{"e4", "e5", "Nf3"}},
	{ECO: "C44", Name: "King's Pawn Game", Variation: "Open Game", Moves: []string{"e4", "e5", "Nf3", "Nc6"}},
	{ECO: "C50", Name: "Italian Game", Moves: []string{"e4", "e5", "Nf3", "Nc6", "Bc4"}},
	{ECO: "C50", Name: "Italian Game", Variation: "Giuoco Piano", Moves: []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5"}},
	{ECO: "C53", Name: "Italian Game", Variation: "Giuoco Piano, Main Line", Moves: []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5", "c3"}},
	{ECO: "C55", Name: "Italian Game", Variation: "Two Knights Defense", Moves: []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Nf6"}},
	{ECO: "C60", Name: "Ruy Lopez", Moves: []string{"e4", "e5", "Nf3", "Nc6", "Bb5"}},
	{ECO: "C65", Name: "Ruy Lopez", Variation: "Berlin Defense", Moves: []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "Nf6"}},
	{ECO: "C68", Name: "Ruy Lopez", Variation: "Exchange Variation", Moves: []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "a6", "Bxc6"}},
	{ECO: "C70", Name: "Ruy Lopez", Variation: "Morphy Defense", Moves: []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "a6", "Ba4"}},
	{ECO: "C42", Name: "Petrov's Defense", Moves: []string{"e4", "e5", "Nf3", "Nf6"}},
	{ECO: "C30", Name: "King's Gambit", Moves: []string{"e4", "e5", "f4"}},
	{ECO: "C33", Name: "King's Gambit Accepted", Moves: []string{"e4", "e5", "f4", "exf4"}},
	{ECO: "C25", Name: "Vienna Game", Moves: []string{"e4", "e5", "Nc3"}},
	{ECO: "B20", Name: "Sicilian Defense", Moves: []string{"e4", "c5"}},
	{ECO: "B27", Name: "Sicilian Defense", Variation: "Open", Moves: []string{"e4", "c5", "Nf3"}},
	{ECO: "B90", Name: "Sicilian Defense", Variation: "Najdorf", Moves: []string{"e4", "c5", "Nf3", "d6", "d4", "cxd4", "Nxd4", "Nf6", "Nc3", "a6"}},
	{ECO: "B30", Name: "Sicilian Defense", Variation: "Old Sicilian", Moves: []string{"e4", "c5", "Nf3", "Nc6"}},
	{ECO: "B23", Name: "Sicilian Defense", Variation: "Closed", Moves: []string{"e4", "c5", "Nc3"}},
	{ECO: "C00", Name: "French Defense", Moves: []string{"e4", "e6"}},
	{ECO: "C02", Name: "French Defense", Variation: "Advance", Moves: []string{"e4", "e6", "d4", "d5", "e5"}},
	{ECO: "C11", Name: "French Defense", Variation: "Classical", Moves: []string{"e4", "e6", "d4", "d5", "Nc3", "Nf6"}},
	{ECO: "B10", Name: "Caro-Kann Defense", Moves: []string{"e4", "c6"}},
	{ECO: "B12", Name: "Caro-Kann Defense", Variation: "Advance", Moves: []string{"e4", "c6", "d4", "d5", "e5"}},
	{ECO: "B01", Name: "Scandinavian Defense", Moves: []string{"e4", "d5"}},
	{ECO: "B07", Name: "Pirc Defense", Moves: []string{"e4", "d6", "d4", "Nf6"}},
	{ECO: "B02", Name: "Alekhine's Defense", Moves: []string{"e4", "Nf6"}},
	{ECO: "A40", Name: "Queen's Pawn Game", Moves: []string{"d4"}},
	{ECO: "D00", Name: "Queen's Pawn Game", Moves: []string{"d4", "d5"}},
	{ECO: "D02", Name: "London System", Moves: []string{"d4", "d5", "Nf3", "Nf6", "Bf4"}},
	{ECO: "D06", Name: "Queen's Gambit", Moves: []string{"d4", "d5", "c4"}},
	{ECO: "D20", Name: "Queen's Gambit Accepted", Moves: []string{"d4", "d5", "c4", "dxc4"}},
	{ECO: "D30", Name: "Queen's Gambit Declined", Moves: []string{"d4", "d5", "c4", "e6"}},
	{ECO: "D10", Name: "Slav Defense", Moves: []string{"d4", "d5", "c4", "c6"}},
	{ECO: "A45", Name: "Indian Game", Moves: []string{"d4", "Nf6"}},
	{ECO: "E20", Name: "Nimzo-Indian Defense", Moves: []string{"d4", "Nf6", "c4", "e6", "Nc3", "Bb4"}},
	{ECO: "E60", Name: "King's Indian Defense", Moves: []string{"d4", "Nf6", "c4", "g6"}},
	{ECO: "D70", Name: "Grünfeld Defense", Moves: []string{"d4", "Nf6", "c4", "g6", "Nc3", "d5"}},
	{ECO: "A50", Name: "Queen's Indian Defense", Moves: []string{"d4", "Nf6", "c4", "e6", "Nf3", "b6"}},
	{ECO: "A80", Name: "Dutch Defense", Moves: []string{"d4", "f5"}},
	{ECO: "A10", Name: "English Opening", Moves: []string{"c4"}},
	{ECO: "A20", Name: "English Opening", Variation: "King's English", Moves: []string{"c4", "e5"}},
	{ECO: "A04", Name: "Zukertort Opening", Moves: []string{"Nf3"}},
	{ECO: "A07", Name: "King's Indian Attack", Moves: []string{"Nf3", "d5", "g3"}},
	{ECO: "A01", Name: "Nimzo-Larsen Attack", Moves: []string{"b3"}},
	{ECO: "A02", Name: "Bird's Opening", Moves: []string{"f4"}},
}
