package fixture

type entry struct {
	id      int
	name    string
	types   []string
	stats   [6]int
	chainID int
	flavor  map[string]string
}

var statNames = [6]string{"hp", "attack", "defense", "special-attack", "special-defense", "speed"}

var entries = []entry{
	{1, "bulbasaur", []string{"grass", "poison"}, [6]int{45, 49, 49, 65, 65, 45}, 1, map[string]string{
		"en": "A strange seed was\nplanted on its\nback at birth.",
		"es": "Una rara semilla le fue plantada en el lomo al nacer.",
	}},
	{2, "ivysaur", []string{"grass", "poison"}, [6]int{60, 62, 63, 80, 80, 60}, 1, map[string]string{
		"en": "When the bulb on\nits back grows\nlarge, it appears\fto lose the ability to stand.",
	}},
	{3, "venusaur", []string{"grass", "poison"}, [6]int{80, 82, 83, 100, 100, 80}, 1, map[string]string{
		"en": "The plant blooms when it is absorbing solar energy.",
	}},
	{4, "charmander", []string{"fire"}, [6]int{39, 52, 43, 60, 50, 65}, 2, map[string]string{
		"en": "Obviously prefers\nhot places.",
		"es": "Prefiere las cosas calientes.",
	}},
	{5, "charmeleon", []string{"fire"}, [6]int{58, 64, 58, 80, 65, 80}, 2, map[string]string{
		"en": "When it swings its burning tail, it elevates the temperature to unbearably high levels.",
	}},
	{6, "charizard", []string{"fire", "flying"}, [6]int{78, 84, 78, 109, 85, 100}, 2, map[string]string{
		"en": "Spits fire that is hot enough to melt boulders.",
		"es": "Escupe un fuego tan caliente que funde las rocas.",
	}},
	{7, "squirtle", []string{"water"}, [6]int{44, 48, 65, 50, 64, 43}, 3, map[string]string{
		"en": "After birth, its back swells and hardens into a shell.",
		"es": "Tras nacer, su espalda se hincha y endurece formando un caparazón.",
	}},
	{8, "wartortle", []string{"water"}, [6]int{59, 63, 80, 65, 80, 58}, 3, map[string]string{
		"en": "Often hides in water to stalk unwary prey.",
	}},
	{9, "blastoise", []string{"water"}, [6]int{79, 83, 100, 85, 105, 78}, 3, map[string]string{
		"en": "A brutal POKéMON with pressurized water jets on its shell.",
	}},
	{25, "pikachu", []string{"electric"}, [6]int{35, 55, 40, 50, 50, 90}, 10, map[string]string{
		"en": "When several of\nthese POKéMON\ngather, their\felectricity could\nbuild and cause\nlightning storms.",
		"es": "Cuanto más potente es la energía eléctrica que genera, más suaves y elásticas se vuelven las bolsas de sus mejillas.",
	}},
	{26, "raichu", []string{"electric"}, [6]int{60, 90, 55, 90, 80, 110}, 10, map[string]string{
		"en": "Its long tail serves as a ground to protect itself from its own high voltage power.",
	}},
	{149, "dragonite", []string{"dragon", "flying"}, [6]int{91, 134, 95, 100, 100, 80}, 61, map[string]string{
		"en": "An extremely rarely seen marine POKéMON.",
	}},
	{152, "chikorita", []string{"grass"}, [6]int{45, 49, 65, 49, 65, 45}, 79, nil},
	{155, "cyndaquil", []string{"fire"}, [6]int{39, 52, 43, 60, 50, 65}, 80, map[string]string{
		"en": "It is timid, and always curls itself up in a ball.",
	}},
	{158, "totodile", []string{"water"}, [6]int{50, 65, 64, 44, 48, 43}, 81, map[string]string{
		"en": "Its well-developed jaws are powerful and capable of crushing anything.",
	}},
}

type stage struct {
	id   int
	name string
}

var chains = map[int][]stage{
	1:  {{1, "bulbasaur"}, {2, "ivysaur"}, {3, "venusaur"}},
	2:  {{4, "charmander"}, {5, "charmeleon"}, {6, "charizard"}},
	3:  {{7, "squirtle"}, {8, "wartortle"}, {9, "blastoise"}},
	10: {{172, "pichu"}, {25, "pikachu"}, {26, "raichu"}},
	61: {{147, "dratini"}, {148, "dragonair"}, {149, "dragonite"}},
	79: {{152, "chikorita"}, {153, "bayleef"}, {154, "meganium"}},
	80: {{155, "cyndaquil"}, {156, "quilava"}, {157, "typhlosion"}},
	81: {{158, "totodile"}, {159, "croconaw"}, {160, "feraligatr"}},
}

var doubleDamageFrom = map[string][]string{
	"grass":    {"flying", "poison", "bug", "fire", "ice"},
	"poison":   {"ground", "psychic"},
	"fire":     {"ground", "rock", "water"},
	"flying":   {"rock", "electric", "ice"},
	"water":    {"grass", "electric"},
	"electric": {"ground"},
	"dragon":   {"ice", "dragon", "fairy"},
}
