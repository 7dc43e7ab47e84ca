package ledger

// SeedAccount is one row of the standard chart-of-accounts seed set.
// An empty ParentCode marks a top-level account. Parents are listed before
// their children so the set can be inserted in order.
type SeedAccount struct {
	Code       string
	Label      string
	ParentCode string
	Type       AccountType
	DirectUse  bool
}

// BelgianPCMN returns the fixed Belgian PCMN seed set curated for property
// management (syndic de copropriété), covering classes 1, 2, 4, 5, 6, 7
// and 9. Derived from the Noalyss mono-belge chart (GPL-2.0-or-later,
// Dany De Bontridder).
func BelgianPCMN() []SeedAccount {
	return []SeedAccount{
		// Class 1: liabilities (capital, reserves, provisions)
		{"1", "Fonds propres, provisions pour risques et charges", "", AccountTypeLiability, false},
		{"10", "Capital", "1", AccountTypeLiability, false},
		{"100", "Capital souscrit", "10", AccountTypeLiability, true},
		{"13", "Réserves", "1", AccountTypeLiability, false},
		{"130", "Réserve légale", "13", AccountTypeLiability, true},
		{"131", "Réserves disponibles", "13", AccountTypeLiability, true},
		{"14", "Provisions pour risques et charges", "1", AccountTypeLiability, true},

		// Classes 2-3: fixed assets (minimal for property management)
		{"2", "Actifs immobilisés", "", AccountTypeAsset, false},
		{"22", "Terrains et constructions", "2", AccountTypeAsset, false},
		{"220", "Terrains", "22", AccountTypeAsset, true},
		{"221", "Constructions", "22", AccountTypeAsset, true},

		// Class 4: receivables and payables
		{"4", "Créances et dettes à un an au plus", "", AccountTypeAsset, false},
		{"40", "Créances commerciales", "4", AccountTypeAsset, false},
		{"400", "Copropriétaires - Appels de fonds", "40", AccountTypeAsset, true},
		{"401", "Copropriétaires - Charges courantes", "40", AccountTypeAsset, true},
		{"402", "Copropriétaires - Travaux extraordinaires", "40", AccountTypeAsset, true},
		{"409", "Réductions de valeur actées (provisions)", "40", AccountTypeAsset, true},
		{"44", "Dettes commerciales", "4", AccountTypeLiability, false},
		{"440", "Fournisseurs", "44", AccountTypeLiability, true},
		{"441", "Effets à payer", "44", AccountTypeLiability, true},
		{"45", "Dettes fiscales, salariales et sociales", "4", AccountTypeLiability, false},
		{"451", "TVA à payer", "45", AccountTypeLiability, true},
		{"411", "TVA récupérable", "4", AccountTypeAsset, true},
		{"46", "Acomptes reçus", "4", AccountTypeLiability, true},
		{"47", "Dettes diverses", "4", AccountTypeLiability, true},

		// Class 5: bank and cash
		{"5", "Placements de trésorerie et valeurs disponibles", "", AccountTypeAsset, false},
		{"55", "Établissements de crédit", "5", AccountTypeAsset, false},
		{"550", "Compte courant bancaire", "55", AccountTypeAsset, true},
		{"551", "Compte épargne", "55", AccountTypeAsset, true},
		{"57", "Caisse", "5", AccountTypeAsset, true},

		// Class 6: expenses
		{"6", "Charges", "", AccountTypeExpense, false},
		{"60", "Approvisionnements et marchandises", "6", AccountTypeExpense, false},
		{"604", "Achats de fournitures", "60", AccountTypeExpense, false},
		{"604001", "Électricité", "604", AccountTypeExpense, true},
		{"604002", "Eau", "604", AccountTypeExpense, true},
		{"604003", "Gaz / Chauffage", "604", AccountTypeExpense, true},
		{"604004", "Mazout", "604", AccountTypeExpense, true},
		{"61", "Services et biens divers", "6", AccountTypeExpense, false},
		{"610", "Loyers et charges locatives", "61", AccountTypeExpense, false},
		{"610001", "Loyer local syndic", "610", AccountTypeExpense, true},
		{"610002", "Charges locatives", "610", AccountTypeExpense, true},
		{"611", "Entretien et réparations", "61", AccountTypeExpense, false},
		{"611001", "Entretien bâtiment", "611", AccountTypeExpense, true},
		{"611002", "Entretien ascenseur", "611", AccountTypeExpense, true},
		{"611003", "Entretien chauffage", "611", AccountTypeExpense, true},
		{"611004", "Entretien espaces verts", "611", AccountTypeExpense, true},
		{"611005", "Nettoyage parties communes", "611", AccountTypeExpense, true},
		{"612", "Fournitures faites à l'entreprise", "61", AccountTypeExpense, false},
		{"612001", "Petit matériel", "612", AccountTypeExpense, true},
		{"612002", "Produits d'entretien", "612", AccountTypeExpense, true},
		{"613", "Rétributions de tiers", "61", AccountTypeExpense, false},
		{"613001", "Honoraires syndic", "613", AccountTypeExpense, true},
		{"613002", "Honoraires experts", "613", AccountTypeExpense, true},
		{"613003", "Honoraires comptables", "613", AccountTypeExpense, true},
		{"613004", "Honoraires avocats", "613", AccountTypeExpense, true},
		{"614", "Publicité et propagande", "61", AccountTypeExpense, true},
		{"615", "Assurances", "61", AccountTypeExpense, false},
		{"615001", "Assurance incendie immeuble", "615", AccountTypeExpense, true},
		{"615002", "Assurance responsabilité civile", "615", AccountTypeExpense, true},
		{"615003", "Assurance tous risques", "615", AccountTypeExpense, true},
		{"617", "Personnel intérimaire", "61", AccountTypeExpense, true},
		{"618", "Rémunérations, charges sociales et pensions", "61", AccountTypeExpense, false},
		{"618001", "Salaires personnel", "618", AccountTypeExpense, true},
		{"618002", "Charges sociales", "618", AccountTypeExpense, true},
		{"618003", "Assurances sociales", "618", AccountTypeExpense, true},
		{"619", "Autres charges d'exploitation", "61", AccountTypeExpense, false},
		{"619001", "Frais postaux", "619", AccountTypeExpense, true},
		{"619002", "Frais bancaires", "619", AccountTypeExpense, true},
		{"619003", "Taxes et impôts divers", "619", AccountTypeExpense, true},
		{"62", "Amortissements, réductions de valeur", "6", AccountTypeExpense, false},
		{"620", "Dotations aux amortissements", "62", AccountTypeExpense, true},
		{"63", "Provisions pour risques et charges", "6", AccountTypeExpense, false},
		{"630", "Dotations aux provisions", "63", AccountTypeExpense, true},
		{"64", "Autres charges d'exploitation", "6", AccountTypeExpense, true},
		{"65", "Charges financières", "6", AccountTypeExpense, false},
		{"650", "Charges des dettes", "65", AccountTypeExpense, true},
		{"651", "Réductions de valeur sur actifs circulants", "65", AccountTypeExpense, true},
		{"66", "Charges exceptionnelles", "6", AccountTypeExpense, true},
		{"67", "Impôts sur le résultat", "6", AccountTypeExpense, true},

		// Class 7: revenue
		{"7", "Produits", "", AccountTypeRevenue, false},
		{"70", "Chiffre d'affaires", "7", AccountTypeRevenue, false},
		{"700", "Appels de fonds copropriétaires", "70", AccountTypeRevenue, false},
		{"700001", "Appels de fonds ordinaires", "700", AccountTypeRevenue, true},
		{"700002", "Appels de fonds extraordinaires", "700", AccountTypeRevenue, true},
		{"700003", "Provisions mensuelles", "700", AccountTypeRevenue, true},
		{"74", "Autres produits d'exploitation", "7", AccountTypeRevenue, false},
		{"740", "Subsides d'exploitation", "74", AccountTypeRevenue, true},
		{"743", "Indemnités perçues", "74", AccountTypeRevenue, true},
		{"744", "Récupération charges antérieures", "74", AccountTypeRevenue, true},
		{"75", "Produits financiers", "7", AccountTypeRevenue, false},
		{"750", "Produits des immobilisations financières", "75", AccountTypeRevenue, true},
		{"751", "Produits des actifs circulants", "75", AccountTypeRevenue, false},
		{"751001", "Intérêts compte bancaire", "751", AccountTypeRevenue, true},
		{"751002", "Intérêts compte épargne", "751", AccountTypeRevenue, true},
		{"76", "Produits exceptionnels", "7", AccountTypeRevenue, true},
		{"77", "Régularisation d'impôts", "7", AccountTypeRevenue, true},

		// Class 9: off-balance memorandum accounts
		{"9", "Comptes hors bilan", "", AccountTypeOffBalance, false},
		{"90", "Droits et engagements", "9", AccountTypeOffBalance, true},
	}
}
