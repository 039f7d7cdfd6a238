package names

// nicknames pairs a short form with the full first name. Order is fixed so
// variant generation is reproducible.
var nicknames = []struct {
	nick string
	full string
}{
	{"mike", "michael"}, {"mikey", "michael"}, {"nick", "nicholas"}, {"nicky", "nicholas"},
	{"rob", "robert"}, {"bob", "robert"}, {"bobby", "robert"}, {"alex", "alexander"},
	{"al", "albert"}, {"matt", "matthew"}, {"chris", "christopher"}, {"topher", "christopher"},
	{"josh", "joshua"}, {"jake", "jacob"}, {"will", "william"}, {"bill", "william"},
	{"billy", "william"}, {"jim", "james"}, {"jimmy", "james"}, {"jamie", "james"},
	{"charlie", "charles"}, {"chuck", "charles"}, {"tom", "thomas"}, {"tommy", "thomas"},
	{"rick", "richard"}, {"dick", "richard"}, {"richie", "richard"}, {"steve", "steven"},
	{"stevie", "steven"}, {"dan", "daniel"}, {"danny", "daniel"}, {"dave", "david"},
	{"davey", "david"}, {"joe", "joseph"}, {"joey", "joseph"}, {"jeff", "jeffrey"},
	{"greg", "gregory"}, {"fred", "frederick"}, {"freddy", "frederick"},
	{"ben", "benjamin"}, {"benny", "benjamin"}, {"sam", "samuel"}, {"sammy", "samuel"},
	{"paco", "francisco"}, {"pancho", "francisco"}, {"pepe", "jose"}, {"checo", "sergio"},
	{"rafa", "rafael"}, {"raffy", "rafael"}, {"lucho", "luis"}, {"memo", "guillermo"},
}

// fullName returns the full first name for a nickname
func fullName(first string) (string, bool) {
	for _, n := range nicknames {
		if n.nick == first {
			return n.full, true
		}
	}
	return "", false
}

// shortNames returns every nickname of a full first name
func shortNames(first string) []string {
	var out []string
	for _, n := range nicknames {
		if n.full == first {
			out = append(out, n.nick)
		}
	}
	return out
}
