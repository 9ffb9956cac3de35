package generator

// Name pools with an Irish flavour, matching the locale of the institutional
// email domain. Picked uniformly by the seeded generator.

var firstNamesMale = []string{
	"Aidan", "Brendan", "Cian", "Ciaran", "Colm", "Conor", "Cormac", "Daithi",
	"Darragh", "Declan", "Diarmuid", "Donal", "Eamon", "Eoghan", "Eoin",
	"Fergal", "Finn", "Fionn", "Gearoid", "Jack", "James", "Liam", "Lorcan",
	"Niall", "Oisin", "Oran", "Padraig", "Patrick", "Peadar", "Pearse",
	"Ronan", "Ruairi", "Sean", "Seamus", "Shane", "Tadhg", "Thomas", "Tiernan",
	"Turlough", "Ultan",
}

var firstNamesFemale = []string{
	"Aine", "Aisling", "Aoibhinn", "Aoife", "Blathnaid", "Bronagh", "Caoimhe",
	"Cara", "Ciara", "Clodagh", "Deirdre", "Eabha", "Eimear", "Emer", "Fiadh",
	"Fionnuala", "Grainne", "Iseult", "Laoise", "Maeve", "Mairead", "Muireann",
	"Niamh", "Nuala", "Orlaith", "Reiltin", "Roisin", "Saoirse", "Sadhbh",
	"Shauna", "Sile", "Sinead", "Siobhan", "Sorcha", "Treasa", "Una",
	"Aileen", "Brigid", "Catriona", "Dervla",
}

var lastNames = []string{
	"Byrne", "Kelly", "Murphy", "Ryan", "Walsh", "O'Brien", "O'Connor",
	"O'Sullivan", "O'Neill", "McCarthy", "Gallagher", "Doyle", "Kennedy",
	"Lynch", "Murray", "Quinn", "Moore", "McLoughlin", "Carroll", "Connolly",
	"Daly", "Connell", "Wilson", "Dunne", "Brennan", "Burke", "Collins",
	"Campbell", "Clarke", "Hughes", "Farrell", "Fitzgerald", "Duffy",
	"Kavanagh", "Sweeney", "Hayes", "Kenny", "Power", "Whelan", "Nolan",
	"Flynn", "Maguire", "Healy", "Sheehan", "Keane", "Magee", "Redmond",
	"Cullen", "Brady", "Casey",
}
