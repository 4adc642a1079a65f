package api

import (
	"slices"

	"github.com/AntonStoeckl/library-circulation/circulation/features/command/addbook"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/adjuststock"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/cancelreservation"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/changerole"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/editbook"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/issuebook"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/issuelibrarycard"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/payfine"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/registermember"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/removebook"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/removemember"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/renewborrow"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/reservebook"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/returnbook"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/submitfeedback"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/updatemember"
	"github.com/AntonStoeckl/library-circulation/circulation/features/query/allborrows"
	"github.com/AntonStoeckl/library-circulation/circulation/features/query/bookcatalog"
	"github.com/AntonStoeckl/library-circulation/circulation/features/query/bookdetails"
	"github.com/AntonStoeckl/library-circulation/circulation/features/query/borrowsbymember"
	"github.com/AntonStoeckl/library-circulation/circulation/features/query/memberprofile"
	"github.com/AntonStoeckl/library-circulation/circulation/features/query/members"
	"github.com/AntonStoeckl/library-circulation/circulation/features/query/outstandingbalance"
	"github.com/AntonStoeckl/library-circulation/circulation/features/query/reservationsbymember"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell/config"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell/observable"
)

// Services holds one instrumented handler per feature.
type Services struct {
	ReserveBook       shell.CoreCommandHandler[reservebook.Command]
	CancelReservation shell.CoreCommandHandler[cancelreservation.Command]
	IssueBook         shell.CoreCommandHandler[issuebook.Command]
	RenewBorrow       shell.CoreCommandHandler[renewborrow.Command]
	ReturnBook        shell.CoreCommandHandler[returnbook.Command]
	PayFine           shell.CoreCommandHandler[payfine.Command]
	SubmitFeedback    shell.CoreCommandHandler[submitfeedback.Command]
	AddBook           shell.CoreCommandHandler[addbook.Command]
	EditBook          shell.CoreCommandHandler[editbook.Command]
	AdjustStock       shell.CoreCommandHandler[adjuststock.Command]
	RemoveBook        shell.CoreCommandHandler[removebook.Command]
	RegisterMember    shell.CoreCommandHandler[registermember.Command]
	UpdateMember      shell.CoreCommandHandler[updatemember.Command]
	ChangeRole        shell.CoreCommandHandler[changerole.Command]
	IssueLibraryCard  shell.CoreCommandHandler[issuelibrarycard.Command]
	RemoveMember      shell.CoreCommandHandler[removemember.Command]

	OutstandingBalance   shell.CoreQueryHandler[outstandingbalance.Query, outstandingbalance.OutstandingBalance]
	BorrowsByMember      shell.CoreQueryHandler[borrowsbymember.Query, borrowsbymember.BorrowsByMember]
	ReservationsByMember shell.CoreQueryHandler[reservationsbymember.Query, reservationsbymember.ReservationsByMember]
	AllBorrows           shell.CoreQueryHandler[allborrows.Query, allborrows.AllBorrows]
	BookCatalog          shell.CoreQueryHandler[bookcatalog.Query, bookcatalog.Catalog]
	BookDetails          shell.CoreQueryHandler[bookdetails.Query, bookdetails.BookDetails]
	Members              shell.CoreQueryHandler[members.Query, members.Members]
	MemberProfile        shell.CoreQueryHandler[memberprofile.Query, memberprofile.MemberProfile]
}

// ServicesOptions configure NewServices.
type ServicesOptions struct {
	ReturnMode   returnbook.Mode
	RetryOptions []shell.RetryOption
	Observers    config.Observers
}

type servicesBuilder struct {
	options ServicesOptions
	err     error
}

// NewServices creates all handlers on top of es.
func NewServices(es shell.EventStore, options ServicesOptions) (Services, error) {
	b := &servicesBuilder{options: options}

	s := Services{
		ReserveBook: wrapCommand(b, func(retry ...shell.RetryOption) shell.CoreCommandHandler[reservebook.Command] {
			return reservebook.NewCommandHandler(es, reservebook.WithRetryOptions(retry...))
		}),
		CancelReservation: wrapCommand(b, func(retry ...shell.RetryOption) shell.CoreCommandHandler[cancelreservation.Command] {
			return cancelreservation.NewCommandHandler(es, cancelreservation.WithRetryOptions(retry...))
		}),
		IssueBook: wrapCommand(b, func(retry ...shell.RetryOption) shell.CoreCommandHandler[issuebook.Command] {
			return issuebook.NewCommandHandler(es, issuebook.WithRetryOptions(retry...))
		}),
		RenewBorrow: wrapCommand(b, func(retry ...shell.RetryOption) shell.CoreCommandHandler[renewborrow.Command] {
			return renewborrow.NewCommandHandler(es, renewborrow.WithRetryOptions(retry...))
		}),
		ReturnBook: wrapCommand(b, func(retry ...shell.RetryOption) shell.CoreCommandHandler[returnbook.Command] {
			return returnbook.NewCommandHandler(es, returnbook.WithRetryOptions(retry...), returnbook.WithMode(options.ReturnMode))
		}),
		PayFine: wrapCommand(b, func(retry ...shell.RetryOption) shell.CoreCommandHandler[payfine.Command] {
			return payfine.NewCommandHandler(es, payfine.WithRetryOptions(retry...))
		}),
		SubmitFeedback: wrapCommand(b, func(retry ...shell.RetryOption) shell.CoreCommandHandler[submitfeedback.Command] {
			return submitfeedback.NewCommandHandler(es, submitfeedback.WithRetryOptions(retry...))
		}),
		AddBook: wrapCommand(b, func(retry ...shell.RetryOption) shell.CoreCommandHandler[addbook.Command] {
			return addbook.NewCommandHandler(es, addbook.WithRetryOptions(retry...))
		}),
		EditBook: wrapCommand(b, func(retry ...shell.RetryOption) shell.CoreCommandHandler[editbook.Command] {
			return editbook.NewCommandHandler(es, editbook.WithRetryOptions(retry...))
		}),
		AdjustStock: wrapCommand(b, func(retry ...shell.RetryOption) shell.CoreCommandHandler[adjuststock.Command] {
			return adjuststock.NewCommandHandler(es, adjuststock.WithRetryOptions(retry...))
		}),
		RemoveBook: wrapCommand(b, func(retry ...shell.RetryOption) shell.CoreCommandHandler[removebook.Command] {
			return removebook.NewCommandHandler(es, removebook.WithRetryOptions(retry...))
		}),
		RegisterMember: wrapCommand(b, func(retry ...shell.RetryOption) shell.CoreCommandHandler[registermember.Command] {
			return registermember.NewCommandHandler(es, registermember.WithRetryOptions(retry...))
		}),
		UpdateMember: wrapCommand(b, func(retry ...shell.RetryOption) shell.CoreCommandHandler[updatemember.Command] {
			return updatemember.NewCommandHandler(es, updatemember.WithRetryOptions(retry...))
		}),
		ChangeRole: wrapCommand(b, func(retry ...shell.RetryOption) shell.CoreCommandHandler[changerole.Command] {
			return changerole.NewCommandHandler(es, changerole.WithRetryOptions(retry...))
		}),
		IssueLibraryCard: wrapCommand(b, func(retry ...shell.RetryOption) shell.CoreCommandHandler[issuelibrarycard.Command] {
			return issuelibrarycard.NewCommandHandler(es, issuelibrarycard.WithRetryOptions(retry...))
		}),
		RemoveMember: wrapCommand(b, func(retry ...shell.RetryOption) shell.CoreCommandHandler[removemember.Command] {
			return removemember.NewCommandHandler(es, removemember.WithRetryOptions(retry...))
		}),

		OutstandingBalance: wrapQuery[outstandingbalance.Query, outstandingbalance.OutstandingBalance](
			b, outstandingbalance.NewQueryHandler(es),
		),
		BorrowsByMember: wrapQuery[borrowsbymember.Query, borrowsbymember.BorrowsByMember](
			b, borrowsbymember.NewQueryHandler(es),
		),
		ReservationsByMember: wrapQuery[reservationsbymember.Query, reservationsbymember.ReservationsByMember](
			b, reservationsbymember.NewQueryHandler(es),
		),
		AllBorrows:    wrapQuery[allborrows.Query, allborrows.AllBorrows](b, allborrows.NewQueryHandler(es)),
		BookCatalog:   wrapQuery[bookcatalog.Query, bookcatalog.Catalog](b, bookcatalog.NewQueryHandler(es)),
		BookDetails:   wrapQuery[bookdetails.Query, bookdetails.BookDetails](b, bookdetails.NewQueryHandler(es)),
		Members:       wrapQuery[members.Query, members.Members](b, members.NewQueryHandler(es)),
		MemberProfile: wrapQuery[memberprofile.Query, memberprofile.MemberProfile](b, memberprofile.NewQueryHandler(es)),
	}

	if b.err != nil {
		return Services{}, b.err
	}

	return s, nil
}

func wrapCommand[C shell.Command](
	b *servicesBuilder,
	build func(retry ...shell.RetryOption) shell.CoreCommandHandler[C],
) shell.CoreCommandHandler[C] {

	if b.err != nil {
		return nil
	}

	var zeroCommand C
	observers := b.options.Observers

	retry := slices.Clone(b.options.RetryOptions)
	if observers.Metrics != nil {
		retry = append(retry, shell.WithMetrics(observers.Metrics, zeroCommand.CommandType()))
	}

	var opts []observable.CommandOption[C]
	if observers.Metrics != nil {
		opts = append(opts, observable.WithCommandMetrics[C](observers.Metrics))
	}
	if observers.Tracing != nil {
		opts = append(opts, observable.WithCommandTracing[C](observers.Tracing))
	}
	if observers.ContextualLogger != nil {
		opts = append(opts, observable.WithCommandContextualLogging[C](observers.ContextualLogger))
	}
	if observers.Logger != nil {
		opts = append(opts, observable.WithCommandLogging[C](observers.Logger))
	}

	wrapper, err := observable.NewCommandWrapper(build(retry...), opts...)
	if err != nil {
		b.err = err
		return nil
	}

	return wrapper
}

func wrapQuery[Q shell.Query, R shell.QueryResult](
	b *servicesBuilder,
	handler shell.CoreQueryHandler[Q, R],
) shell.CoreQueryHandler[Q, R] {

	if b.err != nil {
		return nil
	}

	observers := b.options.Observers

	var opts []observable.QueryOption[Q, R]
	if observers.Metrics != nil {
		opts = append(opts, observable.WithQueryMetrics[Q, R](observers.Metrics))
	}
	if observers.Tracing != nil {
		opts = append(opts, observable.WithQueryTracing[Q, R](observers.Tracing))
	}
	if observers.ContextualLogger != nil {
		opts = append(opts, observable.WithQueryContextualLogging[Q, R](observers.ContextualLogger))
	}
	if observers.Logger != nil {
		opts = append(opts, observable.WithQueryLogging[Q, R](observers.Logger))
	}

	wrapper, err := observable.NewQueryWrapper(handler, opts...)
	if err != nil {
		b.err = err
		return nil
	}

	return wrapper
}
